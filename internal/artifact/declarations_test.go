package artifact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "single declaration", body: "display: flex;", want: "display: flex;"},
		{name: "missing trailing semicolon", body: "display:flex", want: "display: flex;"},
		{name: "multiple declarations", body: "margin:0;padding : 1rem 2rem ;", want: "margin: 0; padding: 1rem 2rem;"},
		{name: "function value", body: "color: rgba(0, 0, 0, .5)", want: "color: rgba(0, 0, 0, .5);"},
		{name: "custom property", body: "--gap: 4px;", want: "--gap: 4px;"},
		{name: "comment ignored", body: "/* spacing */ gap: 4px;", want: "gap: 4px;"},
		{name: "empty", body: "", wantErr: true},
		{name: "only semicolons", body: ";;", wantErr: true},
		{name: "nested block", body: "a { b: c }", wantErr: true},
		{name: "no colon", body: "display flex", wantErr: true},
		{name: "no value", body: "display:;", wantErr: true},
		{name: "number as property", body: "12px: 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBody(tt.body)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
