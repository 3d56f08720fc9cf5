package artifact

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Table accessors for the artifact layout:
//
//	table Style     { name: string (key); css: string; }
//	table Generator { prefix: string; property: string; multiplier: float; unit: string; }
//	table Config    { styles: [Style]; generators: [Generator]; }
//	root_type Config; file_identifier "DXST";
//
// The accessors follow the shape flatc emits for Go.

// FileIdentifier marks a buffer as a style artifact.
const FileIdentifier = "DXST"

const (
	slotStylesVector     = 4
	slotGeneratorsVector = 6

	slotStyleName = 4
	slotStyleCSS  = 6

	slotGeneratorPrefix     = 4
	slotGeneratorProperty   = 6
	slotGeneratorMultiplier = 8
	slotGeneratorUnit       = 10
)

type configTable struct {
	_tab flatbuffers.Table
}

func rootConfig(buf []byte) *configTable {
	n := flatbuffers.GetUOffsetT(buf)
	x := &configTable{}
	x._tab.Bytes = buf
	x._tab.Pos = n
	return x
}

func (rcv *configTable) style(obj *styleTable, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotStylesVector))
	if o == 0 {
		return false
	}
	x := rcv._tab.Vector(o)
	x += flatbuffers.UOffsetT(j) * 4
	x = rcv._tab.Indirect(x)
	obj._tab.Bytes = rcv._tab.Bytes
	obj._tab.Pos = x
	return true
}

func (rcv *configTable) stylesLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotStylesVector))
	if o == 0 {
		return 0
	}
	return rcv._tab.VectorLen(o)
}

func (rcv *configTable) generator(obj *generatorTable, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotGeneratorsVector))
	if o == 0 {
		return false
	}
	x := rcv._tab.Vector(o)
	x += flatbuffers.UOffsetT(j) * 4
	x = rcv._tab.Indirect(x)
	obj._tab.Bytes = rcv._tab.Bytes
	obj._tab.Pos = x
	return true
}

func (rcv *configTable) generatorsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotGeneratorsVector))
	if o == 0 {
		return 0
	}
	return rcv._tab.VectorLen(o)
}

type styleTable struct {
	_tab flatbuffers.Table
}

func (rcv *styleTable) name() []byte {
	return stringField(&rcv._tab, slotStyleName)
}

func (rcv *styleTable) css() []byte {
	return stringField(&rcv._tab, slotStyleCSS)
}

type generatorTable struct {
	_tab flatbuffers.Table
}

func (rcv *generatorTable) prefix() []byte {
	return stringField(&rcv._tab, slotGeneratorPrefix)
}

func (rcv *generatorTable) property() []byte {
	return stringField(&rcv._tab, slotGeneratorProperty)
}

func (rcv *generatorTable) multiplier() float32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotGeneratorMultiplier))
	if o == 0 {
		return 0
	}
	return rcv._tab.GetFloat32(o + rcv._tab.Pos)
}

func (rcv *generatorTable) unit() []byte {
	return stringField(&rcv._tab, slotGeneratorUnit)
}

func stringField(tab *flatbuffers.Table, slot flatbuffers.VOffsetT) []byte {
	o := flatbuffers.UOffsetT(tab.Offset(slot))
	if o == 0 {
		return nil
	}
	return tab.ByteVector(o + tab.Pos)
}

// Builder helpers.

func buildStyle(b *flatbuffers.Builder, name, css string) flatbuffers.UOffsetT {
	nameOff := b.CreateString(name)
	cssOff := b.CreateString(css)
	b.StartObject(2)
	b.PrependUOffsetTSlot(1, cssOff, 0)
	b.PrependUOffsetTSlot(0, nameOff, 0)
	return b.EndObject()
}

func buildGenerator(b *flatbuffers.Builder, g GeneratorRule) flatbuffers.UOffsetT {
	prefixOff := b.CreateString(g.Prefix)
	propertyOff := b.CreateString(g.Property)
	unitOff := b.CreateString(g.Unit)
	b.StartObject(4)
	b.PrependUOffsetTSlot(3, unitOff, 0)
	// Force the multiplier so a zero value is still distinguishable from absence.
	b.PrependFloat32(g.Multiplier)
	b.Slot(2)
	b.PrependUOffsetTSlot(1, propertyOff, 0)
	b.PrependUOffsetTSlot(0, prefixOff, 0)
	return b.EndObject()
}

func buildOffsetVector(b *flatbuffers.Builder, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(4, len(offsets), 4)
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	return b.EndVector(len(offsets))
}

func buildConfig(b *flatbuffers.Builder, styles, generators flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartObject(2)
	b.PrependUOffsetTSlot(1, generators, 0)
	b.PrependUOffsetTSlot(0, styles, 0)
	return b.EndObject()
}
