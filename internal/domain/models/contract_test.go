package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactUnmarshal(t *testing.T) {
	t.Run("truffle layout", func(t *testing.T) {
		data := `{
			"contractName": "GreenWorld",
			"abi": [],
			"bytecode": "0x6080__IterableMapping_______________________6000",
			"deployedBytecode": "0x6080",
			"metadata": "{\"settings\":{\"compilationTarget\":{\"project:/contracts/GreenWorld.sol\":\"GreenWorld\"}}}",
			"networks": {"97": {"address": "0x00000000000000000000000000000000000000aa"}}
		}`

		var a Artifact
		require.NoError(t, json.Unmarshal([]byte(data), &a))
		a.Name = "GreenWorld"

		assert.Equal(t, "GreenWorld", a.ContractName)
		assert.Equal(t, "6080__IterableMapping_______________________6000", a.Bytecode.Hex())
		assert.Empty(t, a.Bytecode.LinkReferences)
		assert.Equal(t, "0x00000000000000000000000000000000000000aa", a.Networks["97"].Address)
		assert.Equal(t, "project:/contracts/GreenWorld.sol", a.SourceUnit())
	})

	t.Run("foundry layout", func(t *testing.T) {
		data := `{
			"abi": [],
			"bytecode": {
				"object": "0x60806040",
				"linkReferences": {"src/IterableMapping.sol": {"IterableMapping": [{"start": 10, "length": 20}]}}
			},
			"deployedBytecode": {"object": "0x6080"},
			"metadata": {"settings": {"compilationTarget": {"src/GreenWorld.sol": "GreenWorld"}}}
		}`

		var a Artifact
		require.NoError(t, json.Unmarshal([]byte(data), &a))
		a.Name = "GreenWorld"

		assert.Equal(t, "60806040", a.Bytecode.Hex())
		refs := a.Bytecode.LinkReferences["src/IterableMapping.sol"]["IterableMapping"]
		require.Len(t, refs, 1)
		assert.Equal(t, LinkReference{Start: 10, Length: 20}, refs[0])
		assert.Equal(t, "src/GreenWorld.sol", a.SourceUnit())
	})

	t.Run("interface has empty bytecode", func(t *testing.T) {
		var a Artifact
		require.NoError(t, json.Unmarshal([]byte(`{"abi": [], "bytecode": "0x"}`), &a))
		assert.True(t, a.Bytecode.Empty())
	})
}

func TestArtifactParseABI(t *testing.T) {
	a := Artifact{
		Name: "GREENTEST",
		ABI:  json.RawMessage(`[{"type":"function","name":"setTradingIsEnabled","inputs":[{"name":"_enabled","type":"bool"}],"outputs":[],"stateMutability":"nonpayable"}]`),
	}

	parsed, err := a.ParseABI()
	require.NoError(t, err)
	method, ok := parsed.Methods["setTradingIsEnabled"]
	require.True(t, ok)
	assert.Equal(t, "setTradingIsEnabled(bool)", method.Sig)

	_, err = (&Artifact{Name: "Empty"}).ParseABI()
	assert.Error(t, err)
}

func TestLibraryLinkFullyQualifiedName(t *testing.T) {
	assert.Equal(t, "src/IterableMapping.sol:IterableMapping", LibraryLink{Name: "IterableMapping", Path: "src/IterableMapping.sol"}.FullyQualifiedName())
	assert.Equal(t, "IterableMapping", LibraryLink{Name: "IterableMapping"}.FullyQualifiedName())
}
