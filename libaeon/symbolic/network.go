package symbolic

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/2x3systems/goaeon/goaeon"
)

// VariableID is a zero-based index identifying a network variable (and its transition operator).
type VariableID int

// ParameterID is a zero-based index identifying an uninterpreted function of a network.
type ParameterID int

// Monotonicity of a regulation
type Monotonicity int8

const (
	Unspecified Monotonicity = iota
	Activation
	Inhibition
)

// MaxParamArity bounds the arity of uninterpreted functions (each needs 2^arity parameter bits).
const MaxParamArity = 10

// Regulation is a directed influence of one variable on another.
type Regulation struct {
	Regulator    VariableID
	Target       VariableID
	Monotonicity Monotonicity
	Observable   bool
}

// Parameter is an uninterpreted Boolean function; Arity 0 denotes a plain constant.
type Parameter struct {
	Name     string
	Arity    int
	Implicit bool // set if it stands in for a missing update function
}

// FnOp identifies the node kind of an update function expression.
type FnOp int8

const (
	FnConst FnOp = iota
	FnVar
	FnParam
	FnNot
	FnAnd
	FnOr
	FnXor
	FnImp
	FnIff
)

// FnUpdate is an update function expression tree.
type FnUpdate struct {
	Op       FnOp
	Value    bool         // FnConst
	Var      VariableID   // FnVar
	Param    ParameterID  // FnParam
	Args     []VariableID // FnParam inputs
	Operands []*FnUpdate  // FnNot (1), binary ops (2), FnAnd / FnOr (2+)
}

// BooleanNetwork is a partially specified (parametrized) asynchronous Boolean network.
type BooleanNetwork struct {
	Name        string
	variables   []string
	index       map[string]VariableID
	regulations []Regulation
	updates     []*FnUpdate // nil denotes an implicit update function
	params      []Parameter
	paramIndex  map[string]ParameterID
}

// NewBooleanNetwork returns a network with the given variable names, sorted, and no regulations.
func NewBooleanNetwork(names ...string) (*BooleanNetwork, error) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	bn := &BooleanNetwork{
		variables:  sorted,
		index:      make(map[string]VariableID, len(sorted)),
		updates:    make([]*FnUpdate, len(sorted)),
		paramIndex: make(map[string]ParameterID),
	}
	for i, name := range sorted {
		if _, dupe := bn.index[name]; dupe {
			return nil, errors.Wrapf(goaeon.ErrBadModel, "duplicate variable %q", name)
		}
		bn.index[name] = VariableID(i)
	}
	return bn, nil
}

func (bn *BooleanNetwork) NumVars() int {
	return len(bn.variables)
}

// Variables returns all variable IDs in ascending order.
func (bn *BooleanNetwork) Variables() []VariableID {
	vars := make([]VariableID, len(bn.variables))
	for i := range vars {
		vars[i] = VariableID(i)
	}
	return vars
}

func (bn *BooleanNetwork) VariableName(v VariableID) string {
	return bn.variables[v]
}

func (bn *BooleanNetwork) FindVariable(name string) (VariableID, bool) {
	v, ok := bn.index[name]
	return v, ok
}

// ResolveVariables maps names to IDs, failing with ErrUnknownVariable.
func (bn *BooleanNetwork) ResolveVariables(names []string) ([]VariableID, error) {
	vars := make([]VariableID, 0, len(names))
	for _, name := range names {
		v, ok := bn.index[name]
		if !ok {
			return nil, errors.Wrapf(goaeon.ErrUnknownVariable, "%q", name)
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func (bn *BooleanNetwork) Params() []Parameter {
	return bn.params
}

func (bn *BooleanNetwork) Regulations() []Regulation {
	return bn.regulations
}

// Regulators returns the regulators of target in ascending order.
func (bn *BooleanNetwork) Regulators(target VariableID) []VariableID {
	var regs []VariableID
	for _, r := range bn.regulations {
		if r.Target == target {
			regs = append(regs, r.Regulator)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i] < regs[j] })
	return regs
}

func (bn *BooleanNetwork) AddRegulation(reg Regulation) error {
	for _, r := range bn.regulations {
		if r.Regulator == reg.Regulator && r.Target == reg.Target {
			return errors.Wrapf(goaeon.ErrBadModel, "duplicate regulation %s -> %s",
				bn.variables[reg.Regulator], bn.variables[reg.Target])
		}
	}
	bn.regulations = append(bn.regulations, reg)
	return nil
}

// AddParameter declares (or looks up) an uninterpreted function with the given arity.
func (bn *BooleanNetwork) AddParameter(name string, arity int) (ParameterID, error) {
	if id, exists := bn.paramIndex[name]; exists {
		if bn.params[id].Arity != arity {
			return 0, errors.Wrapf(goaeon.ErrBadModel, "parameter %q used with arity %d and %d", name, bn.params[id].Arity, arity)
		}
		return id, nil
	}
	if _, isVar := bn.index[name]; isVar {
		return 0, errors.Wrapf(goaeon.ErrBadModel, "parameter %q clashes with a variable", name)
	}
	if arity > MaxParamArity {
		return 0, errors.Wrapf(goaeon.ErrTooManyParams, "parameter %q has arity %d", name, arity)
	}
	id := ParameterID(len(bn.params))
	bn.params = append(bn.params, Parameter{Name: name, Arity: arity})
	bn.paramIndex[name] = id
	return id, nil
}

func (bn *BooleanNetwork) SetUpdate(target VariableID, fn *FnUpdate) error {
	if bn.updates[target] != nil {
		return errors.Wrapf(goaeon.ErrBadModel, "duplicate update function for %q", bn.variables[target])
	}
	bn.updates[target] = fn
	return nil
}

// Update returns the explicit update function of v, or nil if v's function is implicit.
func (bn *BooleanNetwork) Update(v VariableID) *FnUpdate {
	return bn.updates[v]
}

// resolveImplicit replaces every missing update function with an uninterpreted function of the regulators.
func (bn *BooleanNetwork) resolveImplicit() error {
	for v, fn := range bn.updates {
		if fn != nil {
			continue
		}
		target := VariableID(v)
		regs := bn.Regulators(target)

		name := "f_" + bn.variables[v]
		for {
			_, clash := bn.paramIndex[name]
			if !clash {
				break
			}
			name += "_"
		}
		id, err := bn.AddParameter(name, len(regs))
		if err != nil {
			return err
		}
		bn.params[id].Implicit = true
		bn.updates[v] = &FnUpdate{
			Op:    FnParam,
			Param: id,
			Args:  regs,
		}
	}
	return nil
}

// paramBits returns the number of BDD levels needed for every parameter table.
func (bn *BooleanNetwork) paramBits() int {
	bits := 0
	for _, p := range bn.params {
		bits += 1 << p.Arity
	}
	return bits
}
