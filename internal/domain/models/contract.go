package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// LinkReference is the position of one library placeholder in bytecode, in bytes
type LinkReference struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// BytecodeObject holds creation or runtime bytecode along with its link table.
// Truffle artifacts store bytecode as a bare hex string, Foundry wraps it in an
// object with linkReferences; both decode into this type.
type BytecodeObject struct {
	Object         string                                `json:"object"`
	LinkReferences map[string]map[string][]LinkReference `json:"linkReferences,omitempty"`
}

// UnmarshalJSON accepts both the string and the object form
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}

	type plain BytecodeObject
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BytecodeObject(p)
	return nil
}

// Hex returns the bytecode without the 0x prefix
func (b BytecodeObject) Hex() string {
	return strings.TrimPrefix(b.Object, "0x")
}

// Empty reports whether there is no bytecode at all (interfaces, abstract contracts)
func (b BytecodeObject) Empty() bool {
	return b.Hex() == ""
}

// Artifact represents a compiled contract bundle as written by Truffle or Foundry
type Artifact struct {
	ContractName     string                     `json:"contractName,omitempty"`
	SourcePath       string                     `json:"sourcePath,omitempty"`
	ABI              json.RawMessage            `json:"abi"`
	Bytecode         BytecodeObject             `json:"bytecode"`
	DeployedBytecode BytecodeObject             `json:"deployedBytecode"`
	Networks         map[string]ArtifactNetwork `json:"networks,omitempty"`
	Metadata         json.RawMessage            `json:"metadata,omitempty"`

	// Runtime fields (not persisted)
	Name string `json:"-"`
	Path string `json:"-"`
}

// ArtifactNetwork is Truffle's per-network deployment entry
type ArtifactNetwork struct {
	Address         string `json:"address"`
	TransactionHash string `json:"transactionHash,omitempty"`
}

// ParseABI decodes the artifact ABI
func (a *Artifact) ParseABI() (*abi.ABI, error) {
	if len(a.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no ABI", a.Name)
	}
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", a.Name, err)
	}
	return &parsed, nil
}

// artifactMetadata is the subset of solc metadata we read
type artifactMetadata struct {
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// SourceUnit returns the source path the compiler saw for this contract,
// which is the path component of solc's library placeholder hash. Foundry
// stores metadata as an object, Truffle as a JSON-encoded string.
func (a *Artifact) SourceUnit() string {
	raw := bytes.TrimSpace(a.Metadata)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return ""
		}
		raw = []byte(inner)
	}

	var meta artifactMetadata
	if len(raw) > 0 && json.Unmarshal(raw, &meta) == nil {
		for path, name := range meta.Settings.CompilationTarget {
			if name == a.Name || name == a.ContractName {
				return path
			}
		}
	}
	return ""
}

// LibraryLink binds a deployed library to the name and source path used in placeholders
type LibraryLink struct {
	Name    string
	Path    string
	Address string
}

// FullyQualifiedName returns "path:Name", the preimage of solc's placeholder hash
func (l LibraryLink) FullyQualifiedName() string {
	if l.Path == "" {
		return l.Name
	}
	return l.Path + ":" + l.Name
}
