package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"basic comma separated", "foo, bar, baz", []string{"foo", "bar", "baz"}},
		{"deduplication preserves order", "foo, bar, foo", []string{"foo", "bar"}},
		{"trim whitespace and skip empty", "  a , b ,  ", []string{"a", "b"}},
		{"empty string", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseList(tc.input))
		})
	}
}

func TestSelect_Include(t *testing.T) {
	s := Selector{Kind: "argument"}
	available := []string{"--input", "--output", "--reference", "--intervals"}

	t.Run("keeps available order", func(t *testing.T) {
		got, err := s.Select(available, []string{"--intervals", "--input"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"--input", "--intervals"}, got)
	})

	t.Run("unknown name lists available", func(t *testing.T) {
		_, err := s.Select(available, []string{"--x"}, nil)
		assert.ErrorContains(t, err, "argument '--x' not found")
		assert.ErrorContains(t, err, "Available arguments: --input, --output")
		assert.NotContains(t, err.Error(), "Did you mean")
	})

	t.Run("close match suggests", func(t *testing.T) {
		_, err := s.Select(available, []string{"--refrence"}, nil)
		assert.ErrorContains(t, err, "Did you mean '--reference'?")
	})
}

func TestSelect_Exclude(t *testing.T) {
	available := []string{"a", "b", "c", "d"}

	t.Run("exclude subset", func(t *testing.T) {
		got, err := Selector{Kind: "tool"}.Select(available, nil, []string{"c", "d", "zz"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("exclude all errors", func(t *testing.T) {
		_, err := Selector{Kind: "tool"}.Select(available, nil, available)
		assert.ErrorContains(t, err, "all tools excluded")
	})

	t.Run("exclude all allowed", func(t *testing.T) {
		got, err := Selector{Kind: "argument", AllowEmpty: true}.Select(available, nil, available)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSelect_Edges(t *testing.T) {
	_, err := Selector{}.Select(nil, []string{"a"}, []string{"b"})
	assert.ErrorContains(t, err, "cannot be used together")

	got, err := Selector{}.Select([]string{"a", "b"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = Selector{}.Select([]string{"a"}, []string{"q"}, nil)
	assert.ErrorContains(t, err, "name 'q' not found")
}

func TestSuggest(t *testing.T) {
	available := []string{"list_issues", "create_issue", "delete_repo"}
	assert.Equal(t, "list_issues", Suggest("lisst_issues", available))
	assert.Equal(t, "", Suggest("zzzzzzzzzzzzz", available))
	assert.Equal(t, "", Suggest("a", nil))
}
