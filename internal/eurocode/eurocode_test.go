package eurocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Imposed ")
	require.NoError(t, err)
	assert.Equal(t, ImposedA, c)

	c, err = ParseCategory("permanent")
	require.NoError(t, err)
	assert.False(t, c.IsVariable())

	c, err = ParseCategory("snow")
	require.NoError(t, err)
	psi, ok := c.Factors()
	require.True(t, ok)
	assert.Equal(t, Psi{0.5, 0.2, 0}, psi)

	_, err = ParseCategory("seismic")
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("ULS")
	require.NoError(t, err)
	assert.Equal(t, ULS, k)

	_, err = ParseKind("els")
	assert.Error(t, err)
}

var cases = []LoadCase{
	{Name: "G", Category: Permanent},
	{Name: "Q", Category: ImposedB},
	{Name: "S", Category: Snow},
}

func TestGenerateULS(t *testing.T) {
	combos, err := Generate(ULS, cases)
	require.NoError(t, err)
	require.Len(t, combos, 2)

	assert.Equal(t, "ULS-1", combos[0].ID)
	assert.InDelta(t, 1.35, combos[0].Factors["G"], 1e-12)
	assert.InDelta(t, 1.5, combos[0].Factors["Q"], 1e-12)
	assert.InDelta(t, 0.75, combos[0].Factors["S"], 1e-12)

	assert.InDelta(t, 1.05, combos[1].Factors["Q"], 1e-12)
	assert.InDelta(t, 1.5, combos[1].Factors["S"], 1e-12)
	assert.Equal(t, "1.35G + 1.05Q + 1.5S", combos[1].Description)
}

func TestGenerateSLS(t *testing.T) {
	combos, err := Generate(SLSCharacteristic, cases)
	require.NoError(t, err)
	require.Len(t, combos, 2)
	assert.Equal(t, 1.0, combos[0].Factors["G"])
	assert.Equal(t, 1.0, combos[0].Factors["Q"])
	assert.InDelta(t, 0.5, combos[0].Factors["S"], 1e-12)

	combos, err = Generate(SLSFrequent, cases)
	require.NoError(t, err)
	require.Len(t, combos, 2)
	assert.InDelta(t, 0.5, combos[0].Factors["Q"], 1e-12)
	assert.InDelta(t, 0.0, combos[0].Factors["S"], 1e-12)
	assert.InDelta(t, 0.3, combos[1].Factors["Q"], 1e-12)
	assert.InDelta(t, 0.2, combos[1].Factors["S"], 1e-12)

	combos, err = Generate(SLSQuasiPermanent, cases)
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, "1G + 0.3Q", combos[0].Description)
}

func TestGeneratePermanentOnly(t *testing.T) {
	combos, err := Generate(ULS, cases[:1])
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, map[string]float64{"G": 1.35}, combos[0].Factors)

	_, err = Generate(ULS, []LoadCase{{Name: "X", Category: "seismic"}})
	assert.Error(t, err)
	_, err = Generate(Kind("els"), cases)
	assert.Error(t, err)
}

func TestGoverning(t *testing.T) {
	assert.Equal(t, -1, Governing(nil))
	assert.Equal(t, 1, Governing([]float64{3, -7, 5}))
	assert.Equal(t, 0, Governing([]float64{2, 2}))
}

func TestMaterialModuli(t *testing.T) {
	e, g, err := Material{Name: "C30", Kind: Concrete, Fck: 30}.Moduli()
	require.NoError(t, err)
	// EN 1992-1-1 Table 3.1 lists Ecm = 33 GPa for C30/37
	assert.InDelta(t, 32837, e, 1)
	assert.InDelta(t, e/2.4, g, 1e-9)

	e, g, err = Material{Name: "S355", Kind: Steel}.Moduli()
	require.NoError(t, err)
	assert.Equal(t, SteelE, e)
	assert.InDelta(t, 80769.2, g, 0.1)

	e, g, err = Material{Name: "glulam", Kind: Custom, E: 11500, G: 650}.Moduli()
	require.NoError(t, err)
	assert.Equal(t, 11500.0, e)
	assert.Equal(t, 650.0, g)

	_, _, err = Material{Name: "bad", Kind: Custom, E: 11500}.Moduli()
	assert.Error(t, err)
	_, _, err = Material{Name: "bad", Kind: Concrete}.Moduli()
	assert.Error(t, err)
	_, _, err = Material{Name: "bad", Kind: "timber"}.Moduli()
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "1.35G + 1.5Q + 0.75S", Describe(map[string]float64{"S": 0.75, "Q": 1.5, "G": 1.35}))
	assert.Equal(t, "1G", Describe(map[string]float64{"G": 1, "W": 0}))
	assert.Equal(t, "0", Describe(nil))
}
