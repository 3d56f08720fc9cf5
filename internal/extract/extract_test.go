package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/dxstyles/internal/classname"
)

func extractTSX(t *testing.T, src string) []string {
	t.Helper()
	names, err := ExtractSource(context.Background(), []byte(src), LanguageFor("x.tsx"))
	require.NoError(t, err)
	return names.Sorted()
}

func TestExtractSource(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "self closing",
			src:  `const a = <div className="flex mt-4" />;`,
			want: []string{"flex", "mt-4"},
		},
		{
			name: "single quotes and extra whitespace",
			src:  "const a = <div className='  flex\n\th-full  ' />;",
			want: []string{"flex", "h-full"},
		},
		{
			name: "duplicate tokens",
			src:  `const a = <div className="flex flex"><span className="flex" /></div>;`,
			want: []string{"flex"},
		},
		{
			name: "dynamic values ignored",
			src:  "const a = <div className={cls}><b className={`x ${y}`} /><i className={\"lit\"} /></div>;",
			want: []string{},
		},
		{
			name: "other attributes ignored",
			src:  `const a = <div class="no" id="x" data-class="no" />;`,
			want: []string{},
		},
		{
			name: "nested children",
			src:  `const a = <div className="a"><p><span className="b">hi</span></p></div>;`,
			want: []string{"a", "b"},
		},
		{
			name: "fragment",
			src:  `const a = <><div className="a" /></>;`,
			want: []string{"a"},
		},
		{
			name: "ternary branches",
			src:  `const a = ok ? <div className="yes" /> : <div className="no" />;`,
			want: []string{"no", "yes"},
		},
		{
			name: "logical operands",
			src:  `const a = (x && <i className="l" />) || <i className="r" />;`,
			want: []string{"l", "r"},
		},
		{
			name: "jsx expression child",
			src:  `const a = <ul>{show && <li className="item" />}</ul>;`,
			want: []string{"item"},
		},
		{
			name: "function declaration body",
			src: `function App() {
	if (a) {
		return <div className="if" />;
	} else {
		return <div className="else" />;
	}
}`,
			want: []string{"else", "if"},
		},
		{
			name: "arrow expression and block bodies",
			src: `const A = () => <div className="expr" />;
const B = () => { return <div className="block" />; };`,
			want: []string{"block", "expr"},
		},
		{
			name: "function expression",
			src:  `const A = function () { return <div className="fnexpr" />; };`,
			want: []string{"fnexpr"},
		},
		{
			name: "call arguments and spread",
			src:  `render(<App className="arg" />, ...[<b className="spread" />]);`,
			want: []string{"arg", "spread"},
		},
		{
			name: "map callback",
			src:  `const list = items.map((i) => <li key={i} className="row" />);`,
			want: []string{"row"},
		},
		{
			name: "loops",
			src: `for (let i = 0; i < 3; i++) { out.push(<i className="for" />); }
for (const k in obj) { out.push(<i className="forin" />); }
while (x) { out.push(<i className="while" />); }`,
			want: []string{"for", "forin", "while"},
		},
		{
			name: "exports",
			src: `export default function Page() { return <main className="default" />; }
export const Nav = () => <nav className="named" />;`,
			want: []string{"default", "named"},
		},
		{
			name: "class methods",
			src: `class Card extends Base {
	render() {
		return <div className="method" />;
	}
}`,
			want: []string{"method"},
		},
		{
			name: "attribute value element",
			src:  `const a = <Button icon={<Icon className="icon" />} />;`,
			want: []string{"icon"},
		},
		{
			name: "typescript constructs",
			src: `const A = (p: Props): JSX.Element => {
	const el = (<div className="typed" />) as JSX.Element;
	return el;
};`,
			want: []string{"typed"},
		},
		{
			name: "object literal",
			src:  `const icons = { home: <svg className="svg" /> };`,
			want: []string{"svg"},
		},
		{
			name: "chained call",
			src:  `const top = items.map((i) => <li className="chain" />).slice(0, 3);`,
			want: []string{"chain"},
		},
		{
			name: "new expression arguments",
			src:  `const p = new Portal(<div className="neo" />);`,
			want: []string{"neo"},
		},
		{
			name: "subscript and unary operands",
			src: `const first = [<i className="sub" />][0];
const hidden = !<div className="unary" />;`,
			want: []string{"sub", "unary"},
		},
		{
			name: "template substitution",
			src:  "const t = `${<b className=\"tpl\" />}`;",
			want: []string{"tpl"},
		},
		{
			name: "parameter defaults",
			src: `function Page({ icon = <i className="dflt" /> }) { return icon; }
const f = (el = <b className="param" />) => el;`,
			want: []string{"dflt", "param"},
		},
		{
			name: "no markup",
			src:  `export const x = 1;`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, extractTSX(t, tt.src))
		})
	}
}

func TestExtractSourceSyntaxError(t *testing.T) {
	names, err := ExtractSource(context.Background(), []byte(`const a = <div className="flex"`), LanguageFor("x.tsx"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.Empty(t, names)
}

func TestExtractSourceEmpty(t *testing.T) {
	names, err := ExtractSource(context.Background(), nil, LanguageFor("x.tsx"))
	require.NoError(t, err)
	assert.Equal(t, classname.NewSet(), names)
}

func TestLanguageFor(t *testing.T) {
	assert.NotNil(t, LanguageFor("a.tsx"))
	assert.NotNil(t, LanguageFor("a.TSX"))
	assert.NotNil(t, LanguageFor("a.jsx"))
	assert.NotNil(t, LanguageFor("a.ts"))
	assert.NotNil(t, LanguageFor("a.js"))
	assert.Nil(t, LanguageFor("a.css"))
	assert.Nil(t, LanguageFor("Makefile"))
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	jsx := filepath.Join(dir, "a.jsx")
	require.NoError(t, os.WriteFile(jsx, []byte(`export default () => <div className="flex mt-4" />;`), 0o644))
	names, err := ExtractFile(ctx, jsx)
	require.NoError(t, err)
	assert.Equal(t, []string{"flex", "mt-4"}, names.Sorted())

	_, err = ExtractFile(ctx, filepath.Join(dir, "missing.tsx"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	broken := filepath.Join(dir, "broken.tsx")
	require.NoError(t, os.WriteFile(broken, []byte(`<div className="x"`), 0o644))
	names, err = ExtractFile(ctx, broken)
	require.Error(t, err)
	assert.Empty(t, names)

	other := filepath.Join(dir, "x.css")
	require.NoError(t, os.WriteFile(other, []byte(`.a{}`), 0o644))
	names, err = ExtractFile(ctx, other)
	require.Error(t, err)
	assert.Empty(t, names)
}
