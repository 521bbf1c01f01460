package fmri

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip_Path(t *testing.T) {
	s := "sas://type=path/initiator=5003048023567a00/port=5003048023567a00" +
		"/port=500304801861347f/expander=500304801861347f/port=500304801861347f" +
		"/port=5000cca2531a41b9/target=5000cca2531a41b9"

	n, err := Decode(s)
	require.NoError(t, err)
	require.Equal(t, TypePath, n.Authority.Type)
	require.Len(t, n.SASPath, 7)

	out, err := Encode(n)
	require.NoError(t, err)
	require.Equal(t, s, out)
}

func TestDecode_PathnodeWithPhyAuthority(t *testing.T) {
	s := "sas://type=pathnode:start-phy=0:end-phy=7/port=500304801861347f"
	n, err := Decode(s)
	require.NoError(t, err)
	require.Equal(t, TypePathnode, n.Authority.Type)
	require.True(t, n.Authority.HasPhyRange)
	require.EqualValues(t, 0, n.Authority.StartPhy)
	require.EqualValues(t, 7, n.Authority.EndPhy)
	require.Len(t, n.SASPath, 1)
	require.Equal(t, NamePort, n.SASPath[0].Name)
	require.EqualValues(t, 0x500304801861347f, n.SASPath[0].ID)
}

func TestDecode_MalformedRejections(t *testing.T) {
	cases := []string{
		"sas:/type=path/port=1",
		"sas://type=pathnode/port=ZZZZ",
		"sas://type=pathnode/port=0x500",
		"sas://type=pathnode:start-phy=0/port=5",
	}
	for _, s := range cases {
		_, err := Decode(s)
		require.Error(t, err, s)
		require.True(t, errors.Is(err, ErrMalformedFMRI), s)
	}
}

func TestEncode_CanonicalTextRoundTrip(t *testing.T) {
	s := "sas://type=pathnode/expander=500304801861347f"
	n, err := Decode(s)
	require.NoError(t, err)
	out, err := Encode(n)
	require.NoError(t, err)
	require.Equal(t, s, out)
}

func TestConstruct_Pathnode(t *testing.T) {
	n, err := Construct(NamePort, 0x500304801861347f, Authority{
		HasPhyRange: true, StartPhy: 0, EndPhy: 7,
	})
	require.NoError(t, err)
	require.Equal(t, TypePathnode, n.Authority.Type)
	require.Len(t, n.SASPath, 1)

	s, err := Encode(n)
	require.NoError(t, err)
	require.Equal(t, "sas://type=pathnode:start-phy=0:end-phy=7/port=500304801861347f", s)
}

func TestVersionCheck(t *testing.T) {
	require.NoError(t, VersionCheck(0))
	require.True(t, errors.Is(VersionCheck(1), ErrVersionUnsupported))
}

func TestEncode_RejectsMissingPathComponents(t *testing.T) {
	_, err := Encode(NVL{Version: Version, Authority: Authority{Type: TypePath}})
	require.True(t, errors.Is(err, ErrMalformedNVL))
}

func TestEncode_RejectsTooManyExpanderGroups(t *testing.T) {
	path := []PathComponent{
		{Name: NameInitiator, ID: 1}, {Name: NamePort, ID: 1},
		{Name: NamePort, ID: 2}, {Name: NameExpander, ID: 2}, {Name: NamePort, ID: 2},
		{Name: NamePort, ID: 3}, {Name: NameExpander, ID: 3}, {Name: NamePort, ID: 3},
		{Name: NamePort, ID: 4}, {Name: NameExpander, ID: 4}, {Name: NamePort, ID: 4},
		{Name: NamePort, ID: 9}, {Name: NameTarget, ID: 9},
	}
	_, err := Encode(NVL{Version: Version, Authority: Authority{Type: TypePath}, SASPath: path})
	require.True(t, errors.Is(err, ErrMalformedNVL))
}
