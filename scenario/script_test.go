package scenario_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/scenario"
)

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]scenario.Format{
		"a.yaml": scenario.FormatYAML,
		"b.YML":  scenario.FormatYAML,
		"c.toml": scenario.FormatTOML,
	} {
		got, err := scenario.FormatOf(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}

	_, err := scenario.FormatOf("script.json")
	require.ErrorIs(t, err, api.ErrNotSupported)
}

func TestLoadDefaultsName(t *testing.T) {
	s, err := scenario.Load("testdata/unique_move.toml")
	require.NoError(t, err)
	require.Equal(t, "unique-move", s.Name)
	require.Equal(t, scenario.KindInt, s.Kind)
	require.Len(t, s.Steps, 5)

	_, err = scenario.Load("testdata/missing.yaml")
	require.Error(t, err)
}

func TestParseTOMLLiterals(t *testing.T) {
	src := `
kind = "float"
primitive = "array"
size = 3

[[steps]]
op = "new"
slot = "a"
values = [1.5, 2, "3"]
expect = { front = 1.5, size = 3 }
`
	s, err := scenario.Parse([]byte(src), scenario.FormatTOML)
	require.NoError(t, err)
	require.Len(t, s.Steps, 1)

	st := s.Steps[0]
	require.Equal(t, []scenario.Literal{"1.5", "2", "3"}, st.Values)
	require.NotNil(t, st.Expect)
	require.Equal(t, scenario.Literal("1.5"), *st.Expect.Front)
	require.Equal(t, 3, *st.Expect.Size)
	require.Nil(t, st.Expect.Empty)
}

func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	src := `
kind: int
primitive: shared
steps:
  - {op: new, slot: a, value: 1, expect: {nil: true}}
`
	_, err := scenario.Parse([]byte(src), scenario.FormatYAML)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]scenario.Script{
		"kind":      {Kind: "string", Primitive: scenario.PrimitiveShared},
		"primitive": {Kind: scenario.KindInt, Primitive: "weak"},
		"size":      {Kind: scenario.KindInt, Primitive: scenario.PrimitiveArray, Size: -1},
		"op":        {Kind: scenario.KindInt, Primitive: scenario.PrimitiveShared, Steps: []scenario.Step{{Slot: "a"}}},
		"slot":      {Kind: scenario.KindInt, Primitive: scenario.PrimitiveShared, Steps: []scenario.Step{{Op: scenario.OpNew}}},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			err := s.Validate()
			require.True(t, errors.Is(err, api.ErrInvalidArgument), "got %v", err)
		})
	}

	ok := scenario.Script{
		Kind:      scenario.KindChar,
		Primitive: scenario.PrimitiveUnique,
		Steps:     []scenario.Step{{Op: scenario.OpDrain}},
	}
	require.NoError(t, ok.Validate())
}
