package bsdl

import "strings"

// File is a parsed BSDL file. A file holds one entity.
type File struct {
	Entity *Entity `@@`
}

// Entity is the top-level declaration:
//
//	entity CHIP is ... end CHIP;
type Entity struct {
	Name    string         `KwEntity @Ident KwIs`
	Generic *GenericClause `@@?`
	Port    *PortClause    `@@?`
	Decls   []*Decl        `@@*`
	EndName string         `KwEnd KwEntity? @Ident? Semicolon`
}

// Decl is a use clause or an attribute inside the entity body.
type Decl struct {
	Use       *UseClause     `  @@`
	Constant  *Constant      `| @@`
	Attribute *AttributeSpec `| @@`
}

// GenericClause holds the entity generics, usually PHYSICAL_PIN_MAP.
type GenericClause struct {
	Generics []*Generic `KwGeneric LParen ( @@ ( Semicolon @@ )* )? RParen Semicolon`
}

type Generic struct {
	Name    string  `@Ident Colon`
	Type    string  `@Ident`
	Default *string `( Assign @String )?`
}

// PortClause lists the package signals.
type PortClause struct {
	Ports []*Port `KwPort LParen ( @@ ( Semicolon @@ )* Semicolon? )? RParen Semicolon`
}

// Port declares one or more signals sharing a mode and type:
//
//	TDI, TMS : in bit;
type Port struct {
	Names []string  `@Ident ( Comma @Ident )* Colon`
	Mode  string    `@( KwInout | KwIn | KwOut | KwBuffer | KwLinkage )`
	Type  *PortType `@@`
}

// PortType is bit or bit_vector with a range.
type PortType struct {
	Vector bool   `( @KwBitVector`
	Range  *Range `  @@`
	Bit    bool   `| @KwBit )`
}

// Range is a vector index range such as (7 downto 0).
type Range struct {
	From int    `LParen @Integer`
	Dir  string `@Ident`
	To   int    `@Integer RParen`
}

// Width returns the number of bits covered by the range.
func (r *Range) Width() int {
	if r.From > r.To {
		return r.From - r.To + 1
	}
	return r.To - r.From + 1
}

type UseClause struct {
	Package string `KwUse @Ident Dot ( Ident | KwAll ) Semicolon`
}

// Constant is a constant declaration such as a PIN_MAP_STRING:
//
//	constant LQFP64 : PIN_MAP_STRING := "PA0 : 14, " & ...;
type Constant struct {
	Name  string      `KwConstant @Ident Colon`
	Type  string      `@Ident Assign`
	Value *Expression `@@ Semicolon`
}

// AttributeSpec is an attribute specification:
//
//	attribute INSTRUCTION_LENGTH of CHIP : entity is 5;
type AttributeSpec struct {
	Name  string      `KwAttribute @Ident`
	Of    string      `KwOf @Ident Colon`
	Class string      `@( Ident | KwEntity | KwSignal | KwConstant ) KwIs`
	Value *Expression `@@ Semicolon`
}

// Expression is a term or a concatenation of terms.
type Expression struct {
	Terms []*Term `@@ ( Concat @@ )*`
}

type Term struct {
	String  *string       `  @String`
	Real    *float64      `| @Real`
	Integer *int          `| @Integer`
	Ident   *string       `| @Ident`
	Tuple   []*Expression `| LParen @@ ( Comma @@ )* RParen`
	Bool    *bool         `| ( @KwTrue | KwFalse )`
}

// Text joins the string literals of the expression without their quotes.
func (e *Expression) Text() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	for _, t := range e.Terms {
		if t.String != nil {
			sb.WriteString(unquote(*t.String))
		}
	}
	return sb.String()
}

// Int returns the value of a single integer expression.
func (e *Expression) Int() (int, bool) {
	if e == nil || len(e.Terms) != 1 || e.Terms[0].Integer == nil {
		return 0, false
	}
	return *e.Terms[0].Integer, true
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Attributes returns the attribute specifications in declaration order.
func (e *Entity) Attributes() []*AttributeSpec {
	var attrs []*AttributeSpec
	for _, d := range e.Decls {
		if d.Attribute != nil {
			attrs = append(attrs, d.Attribute)
		}
	}
	return attrs
}

// Constants returns the constant declarations in declaration order.
func (e *Entity) Constants() []*Constant {
	var cs []*Constant
	for _, d := range e.Decls {
		if d.Constant != nil {
			cs = append(cs, d.Constant)
		}
	}
	return cs
}

// Ports flattens the port clause into one entry per signal name.
func (e *Entity) Ports() []Signal {
	if e.Port == nil {
		return nil
	}
	var out []Signal
	for _, p := range e.Port.Ports {
		for _, name := range p.Names {
			out = append(out, Signal{Name: name, Mode: strings.ToLower(p.Mode), Type: p.Type})
		}
	}
	return out
}

// Signal is a single named port.
type Signal struct {
	Name string
	Mode string // in, out, inout, buffer or linkage
	Type *PortType
}
