package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// modifiers accepted after the parameter list; the last mutability wins
var modifiers = map[string]bool{
	"view":       true,
	"pure":       true,
	"payable":    true,
	"nonpayable": true,
	"external":   false,
	"public":     false,
}

// dataLocations are accepted and ignored in parameter declarations
var dataLocations = map[string]bool{
	"memory":   true,
	"calldata": true,
	"storage":  true,
}

// abiArgument and abiFunction mirror the JSON ABI entries read by abi.JSON
type abiArgument struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type abiFunction struct {
	Type            string        `json:"type"`
	Name            string        `json:"name"`
	StateMutability string        `json:"stateMutability"`
	Inputs          []abiArgument `json:"inputs"`
	Outputs         []abiArgument `json:"outputs"`
}

// declaration is a human readable function declaration split into its parts
type declaration struct {
	name       string
	inputs     string
	outputs    string
	mutability string
}

// ParseSignature converts a human readable function declaration such as
//
//	function balanceOf(address account, uint256 id) view returns (uint256)
//	function sendTip() payable
//
// into an abi.Method. Parameter types go through abi.ParseSelector and the
// method is built by abi.JSON. Tuple parameters are not supported.
func ParseSignature(signature string) (abi.Method, error) {
	decl, err := splitDeclaration(signature)
	if err != nil {
		return abi.Method{}, fmt.Errorf("%w: %q: %v", domain.ErrInvalidSignature, signature, err)
	}

	inputs, err := parseArguments(decl.name, decl.inputs)
	if err != nil {
		return abi.Method{}, fmt.Errorf("%w: inputs of %q: %v", domain.ErrInvalidSignature, signature, err)
	}
	outputs, err := parseArguments(decl.name, decl.outputs)
	if err != nil {
		return abi.Method{}, fmt.Errorf("%w: outputs of %q: %v", domain.ErrInvalidSignature, signature, err)
	}

	fragment, err := json.Marshal([]abiFunction{{
		Type:            "function",
		Name:            decl.name,
		StateMutability: decl.mutability,
		Inputs:          inputs,
		Outputs:         outputs,
	}})
	if err != nil {
		return abi.Method{}, fmt.Errorf("failed to encode abi fragment: %w", err)
	}

	parsed, err := abi.JSON(bytes.NewReader(fragment))
	if err != nil {
		return abi.Method{}, fmt.Errorf("%w: %q: %v", domain.ErrInvalidSignature, signature, err)
	}

	method, ok := parsed.Methods[decl.name]
	if !ok {
		return abi.Method{}, fmt.Errorf("%w: %q: method %s missing from abi", domain.ErrInvalidSignature, signature, decl.name)
	}
	return method, nil
}

// splitDeclaration separates the name, parameter lists and mutability of a declaration
func splitDeclaration(signature string) (declaration, error) {
	s := strings.TrimSpace(signature)
	if rest, ok := strings.CutPrefix(s, "function "); ok {
		s = strings.TrimSpace(rest)
	}

	name, rest, ok := strings.Cut(s, "(")
	if !ok || strings.TrimSpace(name) == "" {
		return declaration{}, errors.New("missing parameter list")
	}
	inputs, tail, ok := strings.Cut(rest, ")")
	if !ok {
		return declaration{}, errors.New("unterminated parameter list")
	}
	if strings.Contains(inputs, "(") {
		return declaration{}, errors.New("tuple parameters are not supported")
	}

	decl := declaration{
		name:       strings.TrimSpace(name),
		inputs:     inputs,
		mutability: "nonpayable",
	}

	if before, after, found := strings.Cut(tail, "returns"); found {
		tail = before
		outputs := strings.TrimSpace(after)
		if !strings.HasPrefix(outputs, "(") || !strings.HasSuffix(outputs, ")") {
			return declaration{}, errors.New("returns must be followed by a parameter list")
		}
		outputs = outputs[1 : len(outputs)-1]
		if strings.ContainsAny(outputs, "()") {
			return declaration{}, errors.New("tuple parameters are not supported")
		}
		decl.outputs = outputs
	}

	for _, modifier := range strings.Fields(tail) {
		mutability, known := modifiers[modifier]
		if !known {
			return declaration{}, fmt.Errorf("unexpected token %q", modifier)
		}
		if mutability {
			decl.mutability = modifier
		}
	}

	return decl, nil
}

// parseArguments reads a comma separated parameter list. Names and data
// locations are stripped so abi.ParseSelector can validate the types.
func parseArguments(name, list string) ([]abiArgument, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return []abiArgument{}, nil
	}

	parts := strings.Split(list, ",")
	types := make([]string, 0, len(parts))
	names := make([]string, 0, len(parts))
	for i, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			return nil, fmt.Errorf("empty parameter at position %d", i)
		}

		var argName string
		for _, f := range fields[1:] {
			if dataLocations[f] {
				continue
			}
			if argName != "" {
				return nil, fmt.Errorf("unexpected token %q in parameter %q", f, strings.TrimSpace(part))
			}
			argName = f
		}

		typeName := canonicalType(fields[0])
		if err := checkSize(typeName); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", strings.TrimSpace(part), err)
		}
		types = append(types, typeName)
		names = append(names, argName)
	}

	selector, err := abi.ParseSelector(name + "(" + strings.Join(types, ",") + ")")
	if err != nil {
		return nil, err
	}
	if len(selector.Inputs) != len(names) {
		return nil, fmt.Errorf("expected %d parameters, parsed %d", len(names), len(selector.Inputs))
	}

	args := make([]abiArgument, len(selector.Inputs))
	for i, input := range selector.Inputs {
		args[i] = abiArgument{Name: names[i], Type: input.Type}
	}
	return args, nil
}

// canonicalType expands the uint/int aliases so selectors match the compiler's
func canonicalType(t string) string {
	for _, alias := range []string{"uint", "int"} {
		if t == alias {
			return alias + "256"
		}
		if rest, ok := strings.CutPrefix(t, alias+"["); ok {
			return alias + "256[" + rest
		}
	}
	return t
}

// checkSize rejects integer and fixed bytes widths the ABI does not define;
// abi.NewType accepts any width
func checkSize(t string) error {
	base, _, _ := strings.Cut(t, "[")
	for _, prefix := range []string{"uint", "int", "bytes"} {
		digits, ok := strings.CutPrefix(base, prefix)
		if !ok || digits == "" {
			continue
		}
		size, err := strconv.Atoi(digits)
		if err != nil {
			return fmt.Errorf("invalid type %q", t)
		}
		if prefix == "bytes" {
			if size < 1 || size > 32 {
				return fmt.Errorf("invalid type %q", t)
			}
			return nil
		}
		if size < 8 || size > 256 || size%8 != 0 {
			return fmt.Errorf("invalid type %q", t)
		}
		return nil
	}
	return nil
}

// methodCache memoizes parsed signatures; the set used by the pages is small and fixed
type methodCache struct {
	methods sync.Map
}

func (c *methodCache) get(signature string) (abi.Method, error) {
	if m, ok := c.methods.Load(signature); ok {
		return m.(abi.Method), nil
	}

	method, err := ParseSignature(signature)
	if err != nil {
		return abi.Method{}, err
	}

	c.methods.Store(signature, method)
	return method, nil
}
