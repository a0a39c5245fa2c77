package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDescriptor() *ToolDescriptor {
	return &ToolDescriptor{
		Name:    "T",
		Version: "1",
		Arguments: ArgumentSet{
			Required: []Argument{{Name: "--input", TestValue: `""`}},
			Optional: []Argument{{Name: "--limit", TestValue: `0`}},
		},
		CompanionResources: map[string][]Argument{
			"--input": {{Name: "--inputIndex", TestValue: `""`}},
		},
	}
}

func TestParsePairs(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    []Pair
		wantErr string
	}{
		{name: "splits on first equals", entries: []string{"a=b=c"}, want: []Pair{{"a", "b=c"}}},
		{name: "empty value allowed", entries: []string{"a="}, want: []Pair{{"a", ""}}},
		{name: "flag-like key", entries: []string{`--input="x.bam"`}, want: []Pair{{"--input", `"x.bam"`}}},
		{name: "missing equals", entries: []string{"abc"}, wantErr: "expected key=value"},
		{name: "empty key", entries: []string{"=v"}, wantErr: "empty key"},
		{name: "none", entries: nil, want: []Pair{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePairs("--x", tc.entries)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApply_Runtime(t *testing.T) {
	d := sampleDescriptor()
	out, err := Apply(d, Overrides{Runtime: []string{
		"memory=7G",
		"diskRequirements=local-disk 50 SSD",
		"bootdisk=15",
		"memoryRequirements=8G",
	}})
	require.NoError(t, err)

	require.NotNil(t, out.RuntimeProperties)
	assert.Equal(t, RuntimeProperties{
		MemoryRequirements:         "8G",
		DiskRequirements:           "local-disk 50 SSD",
		BootDiskSizeGbRequirements: "15",
	}, *out.RuntimeProperties)
	assert.Nil(t, d.RuntimeProperties, "input must not change")
}

func TestApply_RuntimeUnknown(t *testing.T) {
	_, err := Apply(sampleDescriptor(), Overrides{Runtime: []string{"gpu=1"}})
	assert.ErrorContains(t, err, `unknown runtime property "gpu"`)
}

func TestApply_Values(t *testing.T) {
	d := sampleDescriptor()
	out, err := Apply(d, Overrides{Values: []string{`--input="in.bam"`, `--inputIndex="in.bai"`, "--limit=10"}})
	require.NoError(t, err)

	assert.Equal(t, `"in.bam"`, out.Arguments.Required[0].TestValue)
	assert.Equal(t, `10`, out.Arguments.Optional[0].TestValue)
	assert.Equal(t, `"in.bai"`, out.Companions("--input")[0].TestValue)

	assert.Equal(t, `""`, d.Arguments.Required[0].TestValue)
	assert.Equal(t, `""`, d.Companions("--input")[0].TestValue)
}

func TestApply_ValueErrors(t *testing.T) {
	_, err := Apply(sampleDescriptor(), Overrides{Values: []string{"--nope=1"}})
	assert.ErrorContains(t, err, "no argument or companion resource")

	_, err = Apply(sampleDescriptor(), Overrides{Values: []string{"--input="}})
	assert.ErrorContains(t, err, "empty test value")
}

func TestOverridesEmpty(t *testing.T) {
	assert.True(t, Overrides{}.Empty())
	assert.False(t, Overrides{Runtime: []string{"cpu=1"}}.Empty())
}
