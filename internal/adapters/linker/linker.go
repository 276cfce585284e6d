package linker

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// placeholderLen is the width of a library placeholder in hex characters
const placeholderLen = 2 * common.AddressLength

// ErrLibraryNotReferenced is returned when the bytecode has no slot for a library
var ErrLibraryNotReferenced = errors.New("library not referenced by bytecode")

// UnlinkedLibrariesError lists placeholders left in bytecode after linking
type UnlinkedLibrariesError struct {
	Contract     string
	Placeholders []string
}

func (e UnlinkedLibrariesError) Error() string {
	return fmt.Sprintf("%s has unlinked libraries: %s", e.Contract, strings.Join(e.Placeholders, ", "))
}

// HashPlaceholder returns solc's placeholder for a library:
// "__$" + first 34 hex chars of keccak256("path:Name") + "$__"
func HashPlaceholder(fullyQualifiedName string) string {
	hash := crypto.Keccak256Hash([]byte(fullyQualifiedName)).Hex()[2:]
	return "__$" + hash[:34] + "$__"
}

// LegacyPlaceholder returns the name-based placeholder Truffle writes into artifacts:
// "__" + name, truncated to 36 characters and right-padded with "_" to 40.
func LegacyPlaceholder(name string) string {
	if len(name) > placeholderLen-4 {
		name = name[:placeholderLen-4]
	}
	p := "__" + name
	return p + strings.Repeat("_", placeholderLen-len(p))
}

// Unlinked returns the placeholders still present in hex bytecode, in order of appearance
func Unlinked(code string) []string {
	code = strings.TrimPrefix(code, "0x")
	var found []string
	seen := make(map[string]bool)
	for i := 0; i < len(code); {
		if code[i] != '_' {
			i++
			continue
		}
		end := min(i+placeholderLen, len(code))
		p := code[i:end]
		if !seen[p] {
			seen[p] = true
			found = append(found, p)
		}
		i = end
	}
	return found
}

// References reports whether code has a slot for lib, either in its link
// table or as a placeholder in the hex itself.
func References(code models.BytecodeObject, lib models.LibraryLink) bool {
	if len(linkOffsets(code, lib)) > 0 {
		return true
	}
	hexCode := code.Hex()
	for _, p := range placeholders(lib) {
		if strings.Contains(hexCode, p) {
			return true
		}
	}
	return false
}

// Link substitutes every library address into code and returns the linked hex.
// Each library must be referenced at least once, and no placeholder may remain.
func Link(name string, code models.BytecodeObject, libs ...models.LibraryLink) (string, error) {
	linked := code.Hex()

	for _, lib := range libs {
		if !common.IsHexAddress(lib.Address) {
			return "", fmt.Errorf("library %s: %q is not an address", lib.Name, lib.Address)
		}
		addr := strings.ToLower(common.HexToAddress(lib.Address).Hex()[2:])

		replaced := 0
		for _, ref := range linkOffsets(code, lib) {
			start, end := ref.Start*2, (ref.Start+ref.Length)*2
			if ref.Length*2 != placeholderLen || end > len(linked) {
				return "", fmt.Errorf("library %s: invalid link reference %d+%d", lib.Name, ref.Start, ref.Length)
			}
			linked = linked[:start] + addr + linked[end:]
			replaced++
		}
		for _, p := range placeholders(lib) {
			replaced += strings.Count(linked, p)
			linked = strings.ReplaceAll(linked, p, addr)
		}

		if replaced == 0 {
			return "", fmt.Errorf("%s does not use library %s: %w", name, lib.Name, ErrLibraryNotReferenced)
		}
	}

	if left := Unlinked(linked); len(left) > 0 {
		return "", UnlinkedLibrariesError{Contract: name, Placeholders: left}
	}
	if _, err := hex.DecodeString(linked); err != nil {
		return "", fmt.Errorf("%s bytecode is not valid hex: %w", name, err)
	}

	return linked, nil
}

func placeholders(lib models.LibraryLink) []string {
	ps := []string{LegacyPlaceholder(lib.Name)}
	if lib.Path != "" {
		ps = append(ps, HashPlaceholder(lib.FullyQualifiedName()))
	}
	return ps
}

// linkOffsets returns the link table entries for lib. An empty library path
// matches the name under any source path.
func linkOffsets(code models.BytecodeObject, lib models.LibraryLink) []models.LinkReference {
	var refs []models.LinkReference
	for path, byName := range code.LinkReferences {
		if lib.Path != "" && path != lib.Path {
			continue
		}
		refs = append(refs, byName[lib.Name]...)
	}
	return refs
}

// Linker adapts the package functions to usecase.BytecodeLinker
type Linker struct{}

// NewLinker creates a new bytecode linker
func NewLinker() *Linker {
	return &Linker{}
}

// Link links the artifact's creation bytecode and decodes it
func (l *Linker) Link(artifact *models.Artifact, libs []models.LibraryLink) ([]byte, error) {
	if artifact.Bytecode.Empty() {
		return nil, fmt.Errorf("%s has no creation bytecode (interface or abstract contract?)", artifact.Name)
	}
	linked, err := Link(artifact.Name, artifact.Bytecode, libs...)
	if err != nil {
		return nil, err
	}
	return common.FromHex(linked), nil
}

// References reports whether the artifact's creation bytecode needs lib
func (l *Linker) References(artifact *models.Artifact, lib models.LibraryLink) bool {
	return References(artifact.Bytecode, lib)
}

// Ensure the adapter implements the interface
var _ usecase.BytecodeLinker = (*Linker)(nil)
