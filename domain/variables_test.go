package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariableSet_IsASnapshot(t *testing.T) {
	req := require.New(t)
	values := map[string]string{VarYear: "2020"}

	set := NewVariableSet(values)
	values[VarYear] = "1999"
	values[VarExt] = "MKV"

	req.Equal("2020", set.Get(VarYear))
	_, ok := set.Lookup(VarExt)
	req.False(ok)
	req.Equal(1, set.Len())
}

func TestVocabulary_HasNoDuplicates(t *testing.T) {
	req := require.New(t)
	seen := map[string]bool{}
	for _, v := range Vocabulary {
		req.False(seen[v.Name], v.Name)
		seen[v.Name] = true
		req.True(IsVocabulary(v.Name))
	}
	req.False(IsVocabulary("director"))
}

func TestQualityLabel_Rank(t *testing.T) {
	req := require.New(t)
	req.Less(QualitySD.Rank(), QualityHD.Rank())
	req.Less(QualityHD.Rank(), QualityFHD.Rank())
	req.Less(QualityFHD.Rank(), Quality4K.Rank())
}
