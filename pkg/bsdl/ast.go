package bsdl

import "strings"

// File is a parsed BSDL file. A BSDL file holds exactly one entity.
type File struct {
	Entity *Entity `@@`
}

// Entity is the top-level declaration: entity NAME is ... end NAME;
type Entity struct {
	Name    string         `KwEntity @Ident KwIs`
	Generic *GenericClause `@@?`
	Port    *PortClause    `@@?`
	Decls   []*Decl        `@@*`
	EndName string         `KwEnd ( KwEntity )? @Ident? Semicolon`
}

// Decl is a use clause, constant or attribute inside the entity.
type Decl struct {
	Use       *UseClause `  @@`
	Constant  *Constant  `| @@`
	Attribute *Attribute `| @@`
}

// GenericClause holds the generic parameters.
// Example: generic (PHYSICAL_PIN_MAP : string := "CABGA289");
type GenericClause struct {
	Generics []*Generic `KwGeneric LParen @@ ( Semicolon @@ )* RParen Semicolon`
}

type Generic struct {
	Name    string  `@Ident`
	Type    string  `Colon @Ident`
	Default *String `( Assign @@ )?`
}

// PortClause holds the logical port declarations.
// Example: port (TDI, TMS : in bit; PB : linkage bit_vector (1 to 8));
type PortClause struct {
	Ports []*Port `KwPort LParen @@ ( Semicolon @@ )* RParen Semicolon`
}

type Port struct {
	Names []string  `@Ident ( Comma @Ident )*`
	Mode  string    `Colon @KwMode`
	Type  *PortType `@@`
}

type PortType struct {
	Name  string `@( KwBitVector | KwBit )`
	Range *Range `@@?`
}

// Range is a bit_vector range such as (1 to 8) or (7 downto 0).
type Range struct {
	From      int    `LParen @Integer`
	Direction string `@Ident`
	To        int    `@Integer RParen`
}

// Len returns the number of elements in the range.
func (r *Range) Len() int {
	if r.From > r.To {
		return r.From - r.To + 1
	}
	return r.To - r.From + 1
}

// UseClause is a package reference: use STD_1149_1_2001.all;
type UseClause struct {
	Package string `KwUse @Ident`
	Item    string `Dot @( Ident | KwAll ) Semicolon`
}

// Constant is a constant declaration, used by BSDL for pin maps.
// Example: constant CABGA289 : PIN_MAP_STRING := "TDI : R2," & ...;
type Constant struct {
	Name  string      `KwConstant @Ident`
	Type  string      `Colon @Ident`
	Value *Expression `Assign @@ Semicolon`
}

// Attribute is an attribute specification.
// Example: attribute INSTRUCTION_LENGTH of LIFCL_40 : entity is 8;
type Attribute struct {
	Name   string      `KwAttribute @Ident`
	Of     string      `KwOf @Ident`
	Target string      `Colon @( KwEntity | KwConstant | Ident )`
	Value  *Expression `KwIs @@ Semicolon`
}

// Expression is a single term or a '&' concatenation of terms.
type Expression struct {
	Terms []*Term `@@ ( Concat @@ )*`
}

type Term struct {
	String  *String  `  @@`
	Real    *float64 `| @Real`
	Integer *int     `| @Integer`
	Bool    *string  `| @KwBool`
	Ident   *string  `| @Ident`
	Tuple   *Tuple   `| @@`
}

// Tuple is a parenthesized value list, e.g. (25.0e6, BOTH).
type Tuple struct {
	Values []*Expression `LParen @@ ( Comma @@ )* RParen`
}

type String struct {
	Value string `@String`
}

// Text returns the string contents without the surrounding quotes.
func (s *String) Text() string {
	return strings.TrimSuffix(strings.TrimPrefix(s.Value, `"`), `"`)
}

// Text concatenates the string terms of the expression.
func (e *Expression) Text() string {
	var b strings.Builder
	for _, t := range e.Terms {
		if t.String != nil {
			b.WriteString(t.String.Text())
		}
	}
	return b.String()
}

// Integer returns the value of a single-integer expression.
func (e *Expression) Integer() (int, bool) {
	if len(e.Terms) == 1 && e.Terms[0].Integer != nil {
		return *e.Terms[0].Integer, true
	}
	return 0, false
}

// IdentValue returns the value of a single-identifier expression.
func (e *Expression) IdentValue() (string, bool) {
	if len(e.Terms) == 1 && e.Terms[0].Ident != nil {
		return *e.Terms[0].Ident, true
	}
	return "", false
}

// Attributes returns all attribute specifications in declaration order.
func (e *Entity) Attributes() []*Attribute {
	var attrs []*Attribute
	for _, d := range e.Decls {
		if d.Attribute != nil {
			attrs = append(attrs, d.Attribute)
		}
	}
	return attrs
}

// Attribute returns the first attribute with the given name (case-insensitive).
func (e *Entity) Attribute(name string) *Attribute {
	for _, a := range e.Attributes() {
		if strings.EqualFold(a.Name, name) {
			return a
		}
	}
	return nil
}

// Constants returns all constant declarations in declaration order.
func (e *Entity) Constants() []*Constant {
	var consts []*Constant
	for _, d := range e.Decls {
		if d.Constant != nil {
			consts = append(consts, d.Constant)
		}
	}
	return consts
}

// GenericParam returns the named generic parameter.
func (e *Entity) GenericParam(name string) *Generic {
	if e.Generic == nil {
		return nil
	}
	for _, g := range e.Generic.Generics {
		if strings.EqualFold(g.Name, name) {
			return g
		}
	}
	return nil
}
