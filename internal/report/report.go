// Package report inspects the descriptor set emitted alongside the
// generated bindings and checks the output contract: one generable unit
// per requested schema file.
package report

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Unit summarizes one compiled schema file.
type Unit struct {
	SourceFile string
	Package    string
	Messages   []string
	Enums      []string
}

// FromDescriptorSet decodes a serialized FileDescriptorSet into per-file
// summaries. Imported well-known files are included; callers filter by
// the input set they care about.
func FromDescriptorSet(data []byte) ([]Unit, error) {
	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor set: %w", err)
	}

	units := make([]Unit, 0, len(set.GetFile()))
	for _, file := range set.GetFile() {
		unit := Unit{
			SourceFile: file.GetName(),
			Package:    file.GetPackage(),
		}
		for _, message := range file.GetMessageType() {
			unit.Messages = append(unit.Messages, message.GetName())
		}
		for _, enum := range file.GetEnumType() {
			unit.Enums = append(unit.Enums, enum.GetName())
		}
		units = append(units, unit)
	}
	return units, nil
}

// FromFile reads and decodes a descriptor set file.
func FromFile(path string) ([]Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor set: %w", err)
	}
	return FromDescriptorSet(data)
}

// Verify checks that every requested schema input is present in the
// compiled set exactly once. A miss means the compiler silently dropped a
// unit, which would leave the client library importing stale bindings.
func Verify(units []Unit, inputs []string) error {
	seen := make(map[string]int, len(units))
	for _, unit := range units {
		seen[unit.SourceFile]++
	}
	for _, input := range inputs {
		switch seen[input] {
		case 1:
			// exactly one unit, as required
		case 0:
			return fmt.Errorf("schema %s produced no compiled unit", input)
		default:
			return fmt.Errorf("schema %s produced %d compiled units, want 1", input, seen[input])
		}
	}
	return nil
}
