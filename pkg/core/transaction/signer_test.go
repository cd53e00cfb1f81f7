package transaction

import (
	"testing"

	"github.com/R3E-Network/NeoRust-sub001/internal/testserdes"
	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/keys"
	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerEncodeDecodeBinary(t *testing.T) {
	expected := &Signer{
		Account: util.Uint160{1, 2, 3, 4, 5},
		Scopes:  CalledByEntry,
	}
	actual := &Signer{}
	testserdes.EncodeDecodeBinary(t, expected, actual)

	expected.Scopes = CalledByEntry | CustomContracts
	expected.AllowedContracts = []util.Uint160{{1, 2, 3}, {4, 5, 6}}
	actual = &Signer{}
	testserdes.EncodeDecodeBinary(t, expected, actual)
}

func TestSignerWithGroups(t *testing.T) {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	expected := &Signer{
		Account:       util.Uint160{1, 2, 3},
		Scopes:        CustomGroups,
		AllowedGroups: []*keys.PublicKey{priv.PublicKey()},
	}
	actual := &Signer{}
	testserdes.EncodeDecodeBinary(t, expected, actual)
	testserdes.MarshalUnmarshalJSON(t, expected, &Signer{})
}

func TestNewSigner(t *testing.T) {
	acc := util.Uint160{1}
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	contracts := []util.Uint160{{2}, {3}}
	groups := keys.PublicKeys{priv.PublicKey()}

	s, err := NewSigner(acc, CalledByEntry, nil, nil)
	require.NoError(t, err)
	require.Equal(t, acc, s.Account)

	s, err = NewSigner(acc, CalledByEntry|CustomContracts|CustomGroups, contracts, groups)
	require.NoError(t, err)
	require.Equal(t, contracts, s.AllowedContracts)
	require.Equal(t, []*keys.PublicKey(groups), s.AllowedGroups)

	_, err = NewSigner(acc, Global|CalledByEntry, nil, nil)
	require.ErrorIs(t, err, ErrInvalidScope)

	_, err = NewSigner(acc, WitnessScope(0x40), nil, nil)
	require.ErrorIs(t, err, ErrInvalidScope)

	_, err = NewSigner(acc, CustomContracts, nil, nil)
	require.ErrorIs(t, err, ErrInvalidScope)

	_, err = NewSigner(acc, CustomGroups, nil, nil)
	require.ErrorIs(t, err, ErrInvalidScope)

	_, err = NewSigner(acc, CalledByEntry, contracts, nil)
	require.ErrorIs(t, err, ErrInvalidScope)

	_, err = NewSigner(acc, CalledByEntry, nil, groups)
	require.ErrorIs(t, err, ErrInvalidScope)

	_, err = NewSigner(acc, CustomContracts, make([]util.Uint160, maxSubitems+1), nil)
	require.ErrorIs(t, err, ErrInvalidScope)
}

func TestSignerDecodeInvalidScope(t *testing.T) {
	data, err := testserdes.EncodeBinary(&Signer{Scopes: CalledByEntry})
	require.NoError(t, err)
	data[util.Uint160Size] = byte(Global | CalledByEntry)
	require.Error(t, testserdes.DecodeBinary(data, &Signer{}))
}

func TestSignerSize(t *testing.T) {
	s := &Signer{
		Account: util.Uint160{1},
		Scopes:  CustomContracts,
		AllowedContracts: []util.Uint160{
			{2}, {3},
		},
	}
	data, err := testserdes.EncodeBinary(s)
	require.NoError(t, err)
	require.Equal(t, len(data), s.Size())

	s2 := &Signer{Account: util.Uint160{1}, Scopes: None}
	data, err = testserdes.EncodeBinary(s2)
	require.NoError(t, err)
	require.Equal(t, len(data), s2.Size())
}

func TestSignerPermits(t *testing.T) {
	entry := util.Uint160{0xEE}
	contract := util.Uint160{0xCC}
	other := util.Uint160{0x99}

	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	group := priv.PublicKey()

	testCases := []struct {
		name   string
		signer Signer
		ctx    InvocationContext
		result bool
	}{
		{
			name:   "none never permits",
			signer: Signer{Scopes: None},
			ctx:    InvocationContext{Entry: entry, Current: contract},
			result: false,
		},
		{
			name:   "global always permits",
			signer: Signer{Scopes: Global},
			ctx:    InvocationContext{Entry: entry, Calling: other, Current: contract},
			result: true,
		},
		{
			name:   "called by entry from entry",
			signer: Signer{Scopes: CalledByEntry},
			ctx:    InvocationContext{Entry: entry, Calling: entry, Current: contract},
			result: true,
		},
		{
			name:   "called by entry at the entry itself",
			signer: Signer{Scopes: CalledByEntry},
			ctx:    InvocationContext{Entry: entry, Current: entry},
			result: true,
		},
		{
			name:   "called by entry from deeper call",
			signer: Signer{Scopes: CalledByEntry},
			ctx:    InvocationContext{Entry: entry, Calling: other, Current: contract},
			result: false,
		},
		{
			name: "custom contracts allows listed",
			signer: Signer{
				Scopes:           CustomContracts,
				AllowedContracts: []util.Uint160{contract},
			},
			ctx:    InvocationContext{Entry: entry, Calling: other, Current: contract},
			result: true,
		},
		{
			name: "custom contracts rejects unlisted",
			signer: Signer{
				Scopes:           CustomContracts,
				AllowedContracts: []util.Uint160{contract},
			},
			ctx:    InvocationContext{Entry: entry, Calling: other, Current: other},
			result: false,
		},
		{
			name: "custom groups allows matching group",
			signer: Signer{
				Scopes:        CustomGroups,
				AllowedGroups: []*keys.PublicKey{group},
			},
			ctx: InvocationContext{
				Entry:   entry,
				Calling: other,
				Current: contract,
				Groups:  keys.PublicKeys{group},
			},
			result: true,
		},
		{
			name: "custom groups rejects unrelated contract",
			signer: Signer{
				Scopes:        CustomGroups,
				AllowedGroups: []*keys.PublicKey{group},
			},
			ctx:    InvocationContext{Entry: entry, Calling: other, Current: contract},
			result: false,
		},
		{
			name: "combined scope falls through",
			signer: Signer{
				Scopes:           CalledByEntry | CustomContracts,
				AllowedContracts: []util.Uint160{contract},
			},
			ctx:    InvocationContext{Entry: entry, Calling: other, Current: contract},
			result: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.result, tc.signer.Permits(tc.ctx))
		})
	}
}

func TestSignerCopy(t *testing.T) {
	s := &Signer{
		Account:          util.Uint160{1},
		Scopes:           CustomContracts,
		AllowedContracts: []util.Uint160{{2}},
	}
	cp := s.Copy()
	cp.AllowedContracts[0] = util.Uint160{9}
	require.NotEqual(t, s.AllowedContracts, cp.AllowedContracts)
}

func TestScopesFromString(t *testing.T) {
	s, err := ScopesFromString("Global")
	require.NoError(t, err)
	require.Equal(t, Global, s)

	s, err = ScopesFromString("CalledByEntry,CustomGroups")
	require.NoError(t, err)
	require.Equal(t, CalledByEntry|CustomGroups, s)

	_, err = ScopesFromString("Global,CustomGroups")
	require.Error(t, err)

	_, err = ScopesFromString("Whatever")
	require.Error(t, err)
}
