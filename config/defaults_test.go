package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdrkit.dev/demod/mode"
)

const sampleDoc = `
wbfm:
  stereo: true
  deEmphasisSec: 0.00005
nbfm:
  bandwidthHz: 6000
am:
  bandwidthHz: 4000
ssb:
  upper: false
  bandwidthHz: 2700
cw:
  bandwidthHz: 150
`

func TestParse_DecodesAllModeSections(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.True(t, d.WBFM.Stereo)
	assert.InDelta(t, 0.00005, d.WBFM.DeEmphasisSec, 1e-9)
	assert.Equal(t, 6000.0, d.NBFM.BandwidthHz)
	assert.Equal(t, 4000.0, d.AM.BandwidthHz)
	assert.False(t, d.SSB.Upper)
	assert.Equal(t, 2700.0, d.SSB.BandwidthHz)
	assert.Equal(t, 150.0, d.CW.BandwidthHz)
}

func TestParse_EmptyDocumentLeavesZeroValues(t *testing.T) {
	d, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.False(t, d.WBFM.Stereo)
	assert.Equal(t, 0.0, d.NBFM.BandwidthHz)
}

func TestBuildRegistry_ZeroValuesFallBackToLibraryDefaults(t *testing.T) {
	d, err := Parse([]byte(""))
	require.NoError(t, err)

	reg := d.BuildRegistry()
	p, err := reg.Get(mode.SchemeNBFM, 2048000, 48000)
	require.NoError(t, err)
	assert.Equal(t, uint(48000), p.AudioSampleRate())
	assert.Equal(t, 5000.0, p.Config().Mode.MaxDeviation)
}

func TestBuildRegistry_HonorsConfiguredValues(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	reg := d.BuildRegistry()
	for _, scheme := range []mode.Scheme{
		mode.SchemeWBFM, mode.SchemeNBFM, mode.SchemeAM, mode.SchemeSSB, mode.SchemeCW,
	} {
		p, err := reg.Get(scheme, 2048000, 48000)
		require.NoError(t, err)
		assert.NotNil(t, p)
	}
}
