package main

import (
	"fmt"

	"go.tfp.dev/shapecheck/ir"
)

// fixture is the YAML-serializable mirror of one txtar archive's contents: a single function's
// IR plus the type environment it's checked against. It only covers the operator and terminator
// kinds exercised by the worked scenarios this tool is meant to inspect - it is a debugging aid,
// not a general-purpose IR serialization format.
type fixture struct {
	Function fixtureFunction          `yaml:"function"`
	Types    map[string][]fixtureField `yaml:"types"`
}

type fixtureField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type fixtureFunction struct {
	Name    string          `yaml:"name"`
	Entry   string          `yaml:"entry"`
	ArgType string          `yaml:"argType"`
	RetType string          `yaml:"retType"`
	Blocks  []fixtureBlock  `yaml:"blocks"`
}

type fixtureBlock struct {
	Name       string              `yaml:"name"`
	Arguments  []fixtureArg        `yaml:"arguments"`
	Operators  []fixtureOperator   `yaml:"operators"`
	Terminator fixtureTerminator   `yaml:"terminator"`
}

type fixtureArg struct {
	Register string `yaml:"register"`
	Type     string `yaml:"type"`
}

type fixtureOperator struct {
	Kind    string   `yaml:"kind"`
	Results []string `yaml:"results"`
	// generic operand fields; only the ones meaningful to Kind are read.
	Operand  string   `yaml:"operand,omitempty"`
	LHS      string   `yaml:"lhs,omitempty"`
	RHS      string   `yaml:"rhs,omitempty"`
	Callee   string   `yaml:"callee,omitempty"`
	Args     []string `yaml:"args,omitempty"`
	Name     string   `yaml:"name,omitempty"`
	Value    int64    `yaml:"value,omitempty"`
	Elements []string `yaml:"elements,omitempty"`
	TypeName string   `yaml:"typeName,omitempty"`
	Field    string   `yaml:"field,omitempty"`
	Index    int      `yaml:"index,omitempty"`
}

type fixtureTerminator struct {
	Kind          string   `yaml:"kind"`
	Target        string   `yaml:"target"`
	Operands      []string `yaml:"operands,omitempty"`
	Cond          string   `yaml:"cond,omitempty"`
	TrueTarget    string   `yaml:"trueTarget,omitempty"`
	TrueOperands  []string `yaml:"trueOperands,omitempty"`
	FalseTarget   string   `yaml:"falseTarget,omitempty"`
	FalseOperands []string `yaml:"falseOperands,omitempty"`
	Operand       string   `yaml:"operand,omitempty"`
}

func parseType(s string) ir.Type {
	if s == "" {
		return nil
	}
	return ir.NamedType{Name: s}
}

func (f *fixture) toIR() (*ir.Function, ir.TypeEnvironment, error) {
	tenv := ir.TypeEnvironment{}
	for name, fields := range f.Types {
		decls := make([]ir.FieldDecl, len(fields))
		for i, fl := range fields {
			decls[i] = ir.FieldDecl{Name: fl.Name, Type: parseType(fl.Type)}
		}
		tenv[name] = decls
	}

	blocks := make([]ir.Block, len(f.Function.Blocks))
	for i, b := range f.Function.Blocks {
		args := make([]ir.BlockArgument, len(b.Arguments))
		for j, a := range b.Arguments {
			args[j] = ir.BlockArgument{Register: ir.Register(a.Register), Type: parseType(a.Type)}
		}
		ops := make([]ir.OperatorDef, len(b.Operators))
		for j, o := range b.Operators {
			variant, err := o.toOperator()
			if err != nil {
				return nil, nil, fmt.Errorf("block %s operator %d: %w", b.Name, j, err)
			}
			results := make([]ir.Register, len(o.Results))
			for k, r := range o.Results {
				results[k] = ir.Register(r)
			}
			ops[j] = ir.OperatorDef{Results: results, Variant: variant}
		}
		term, err := b.Terminator.toTerminator()
		if err != nil {
			return nil, nil, fmt.Errorf("block %s terminator: %w", b.Name, err)
		}
		blocks[i] = ir.Block{
			Name:       ir.BlockName(b.Name),
			Arguments:  args,
			Operators:  ops,
			Terminator: ir.TerminatorDef{Variant: term},
		}
	}

	fn := &ir.Function{
		Name:    f.Function.Name,
		Entry:   ir.BlockName(f.Function.Entry),
		Blocks:  blocks,
		ArgType: parseType(f.Function.ArgType),
		RetType: parseType(f.Function.RetType),
	}
	return fn, tenv, nil
}

func registers(ss []string) []ir.Register {
	out := make([]ir.Register, len(ss))
	for i, s := range ss {
		out[i] = ir.Register(s)
	}
	return out
}

func (o fixtureOperator) toOperator() (ir.Operator, error) {
	switch o.Kind {
	case "integerLiteral":
		return ir.IntegerLiteral{Value: o.Value}, nil
	case "arrayLiteral":
		return ir.ArrayLiteral{Elements: registers(o.Elements)}, nil
	case "literalEqual":
		return ir.LiteralEqual{LHS: ir.Register(o.LHS), RHS: ir.Register(o.RHS)}, nil
	case "functionRef":
		return ir.FunctionRef{Name: o.Name}, nil
	case "apply":
		return ir.Apply{Callee: ir.Register(o.Callee), Args: registers(o.Args)}, nil
	case "structExtract":
		return ir.StructExtract{Operand: ir.Register(o.Operand), TypeName: o.TypeName, FieldName: o.Field}, nil
	case "tupleExtract":
		return ir.TupleExtract{Operand: ir.Register(o.Operand), Index: o.Index}, nil
	case "copyValue":
		return ir.CopyValue{Operand: ir.Register(o.Operand)}, nil
	case "unknown":
		return ir.Unknown{Name: o.Name, Results: len(o.Results)}, nil
	default:
		return nil, fmt.Errorf("unsupported operator kind %q", o.Kind)
	}
}

func (t fixtureTerminator) toTerminator() (ir.Terminator, error) {
	switch t.Kind {
	case "br":
		return ir.Br{Target: ir.BlockName(t.Target), Operands: registers(t.Operands)}, nil
	case "condBr":
		return ir.CondBr{
			Cond:          ir.Register(t.Cond),
			TrueTarget:    ir.BlockName(t.TrueTarget),
			TrueOperands:  registers(t.TrueOperands),
			FalseTarget:   ir.BlockName(t.FalseTarget),
			FalseOperands: registers(t.FalseOperands),
		}, nil
	case "return":
		return ir.Return{Operand: ir.Register(t.Operand)}, nil
	case "unreachable":
		return ir.Unreachable{}, nil
	default:
		return nil, fmt.Errorf("unsupported terminator kind %q", t.Kind)
	}
}
