package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenforge/spl-token-engine/token"
)

func TestInstructionRoundTrip_Transfer(t *testing.T) {
	inst := token.NewTransferInstruction(1000)

	data, err := inst.Data()
	require.NoError(t, err)
	require.Equal(t, token.Instruction_Transfer, data[0])

	decoded, err := token.DecodeInstruction(data)
	require.NoError(t, err)

	payload, ok := decoded.Impl.(*token.Transfer)
	require.True(t, ok)
	require.Equal(t, uint64(1000), payload.Amount)
}

func TestInstructionRoundTrip_InitializeMint_WithFreezeAuthority(t *testing.T) {
	mintAuthority := mustSeedKey(t, 20)
	freezeAuthority := mustSeedKey(t, 21)

	inst := token.NewInitializeMintInstruction(6, mintAuthority, &freezeAuthority)
	data, err := inst.Data()
	require.NoError(t, err)

	decoded, err := token.DecodeInstruction(data)
	require.NoError(t, err)

	payload, ok := decoded.Impl.(*token.InitializeMint)
	require.True(t, ok)
	require.Equal(t, uint8(6), payload.Decimals)
	require.Equal(t, mintAuthority, payload.MintAuthority)
	require.NotNil(t, payload.FreezeAuthority)
	require.Equal(t, freezeAuthority, *payload.FreezeAuthority)
}

func TestInstructionRoundTrip_InitializeMint_NoFreezeAuthority(t *testing.T) {
	mintAuthority := mustSeedKey(t, 22)

	inst := token.NewInitializeMintInstruction(2, mintAuthority, nil)
	data, err := inst.Data()
	require.NoError(t, err)

	decoded, err := token.DecodeInstruction(data)
	require.NoError(t, err)

	payload, ok := decoded.Impl.(*token.InitializeMint)
	require.True(t, ok)
	require.Nil(t, payload.FreezeAuthority)
}

func TestInstructionRoundTrip_NoPayloadVariants(t *testing.T) {
	cases := []struct {
		name string
		inst *token.Instruction
		tag  uint8
	}{
		{"InitializeAccount", token.NewInitializeAccountInstruction(), token.Instruction_InitializeAccount},
		{"Revoke", token.NewRevokeInstruction(), token.Instruction_Revoke},
		{"CloseAccount", token.NewCloseAccountInstruction(), token.Instruction_CloseAccount},
		{"FreezeAccount", token.NewFreezeAccountInstruction(), token.Instruction_FreezeAccount},
		{"ThawAccount", token.NewThawAccountInstruction(), token.Instruction_ThawAccount},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, err := c.inst.Data()
			require.NoError(t, err)
			require.Equal(t, c.tag, data[0])
			require.Len(t, data, 1)

			_, err = token.DecodeInstruction(data)
			require.NoError(t, err)
		})
	}
}

func TestInstructionRoundTrip_SetAuthority(t *testing.T) {
	newAuthority := mustSeedKey(t, 23)
	inst := token.NewSetAuthorityInstruction(token.AuthorityTypeCloseAccount, &newAuthority)

	data, err := inst.Data()
	require.NoError(t, err)

	decoded, err := token.DecodeInstruction(data)
	require.NoError(t, err)

	payload, ok := decoded.Impl.(*token.SetAuthority)
	require.True(t, ok)
	require.Equal(t, token.AuthorityTypeCloseAccount, payload.AuthorityType)
	require.Equal(t, newAuthority, *payload.NewAuthority)
}

func TestInstructionRoundTrip_InitializeMultisig(t *testing.T) {
	inst := token.NewInitializeMultisigInstruction(3)
	data, err := inst.Data()
	require.NoError(t, err)

	decoded, err := token.DecodeInstruction(data)
	require.NoError(t, err)

	payload, ok := decoded.Impl.(*token.InitializeMultisig)
	require.True(t, ok)
	require.Equal(t, uint8(3), payload.M)
}

func TestDecodeInstruction_EmptyData(t *testing.T) {
	_, err := token.DecodeInstruction(nil)
	require.Error(t, err)
	kind, ok := token.KindOf(err)
	require.True(t, ok)
	require.Equal(t, token.InvalidInstruction, kind)
}

func TestDecodeInstruction_UnknownDiscriminant(t *testing.T) {
	_, err := token.DecodeInstruction([]byte{255})
	require.Error(t, err)
	kind, ok := token.KindOf(err)
	require.True(t, ok)
	require.Equal(t, token.InvalidInstruction, kind)
}

func TestDecodeInstruction_TruncatedPayload(t *testing.T) {
	_, err := token.DecodeInstruction([]byte{token.Instruction_Transfer, 0, 0})
	require.Error(t, err)
	kind, ok := token.KindOf(err)
	require.True(t, ok)
	require.Equal(t, token.InvalidInstruction, kind)
}

func TestAuthorityTypeString(t *testing.T) {
	require.Equal(t, "MintTokens", token.AuthorityTypeMintTokens.String())
	require.Equal(t, "FreezeAccount", token.AuthorityTypeFreezeAccount.String())
	require.Equal(t, "AccountOwner", token.AuthorityTypeAccountOwner.String())
	require.Equal(t, "CloseAccount", token.AuthorityTypeCloseAccount.String())
}
