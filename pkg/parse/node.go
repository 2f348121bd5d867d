package parse

import "src.mar.sh/pkg/diag"

// Node is implemented by all AST nodes. Nodes are immutable after parsing;
// they may be walked any number of times without re-parsing.
type Node interface {
	diag.Ranger
	// SourceText returns the part of the source text the node was parsed from.
	SourceText() string
	n() *node
}

// node is the common part of all AST nodes. It is embedded in all node types.
type node struct {
	diag.Ranging
	sourceText string
}

func (n *node) n() *node           { return n }
func (n *node) SourceText() string { return n.sourceText }

// Chunk is a sequence of statements, executed in textual order.
type Chunk struct {
	node
	Statements []Statement
}

// Statement is implemented by all statement nodes: *LetStmt, *Pipeline,
// *IfStmt, *WhileStmt, *ForStmt and *FnStmt.
type Statement interface {
	Node
	stmt()
}

func (*LetStmt) stmt()   {}
func (*Pipeline) stmt()  {}
func (*IfStmt) stmt()    {}
func (*WhileStmt) stmt() {}
func (*ForStmt) stmt()   {}
func (*FnStmt) stmt()    {}

// AssignOp identifies an assignment operator.
type AssignOp int

// AssignOp constants.
const (
	// Set replaces the value and type of the variable unconditionally.
	Set AssignOp = iota
	// AppendConcat concatenates the expanded RHS after the current value.
	AppendConcat
	// PrependConcat concatenates the expanded RHS before the current value.
	PrependConcat
)

func (op AssignOp) String() string {
	switch op {
	case Set:
		return "="
	case AppendConcat:
		return "++="
	case PrependConcat:
		return "::="
	}
	return "bad assign op"
}

// LetStmt is an assignment statement: let NAME OP RHS.
type LetStmt struct {
	node
	Name string
	// NameRange is the range of the variable name, for error reporting.
	NameRange diag.Ranging
	Op        AssignOp
	// RHS is the sequence of word templates on the right-hand side. It may be
	// empty, in which case the RHS expands to an empty scalar.
	RHS []*Compound
}

// Pipeline is a sequence of forms with their output and input wired
// stage-to-stage, optionally marked to run in the background.
type Pipeline struct {
	node
	Forms      []*Form
	Background bool
}

// Form is a single command: a non-empty sequence of word templates, plus any
// redirections, which bind to this form rather than the whole pipeline.
type Form struct {
	node
	Words  []*Compound
	Redirs []*Redir
}

// RedirMode identifies the mode of an IO redirection.
type RedirMode int

// RedirMode constants.
const (
	Write RedirMode = iota
	Append
	Read
)

func (m RedirMode) String() string {
	switch m {
	case Write:
		return ">"
	case Append:
		return ">>"
	case Read:
		return "<"
	}
	return "bad redir mode"
}

// Redir is an IO redirection to or from a file.
type Redir struct {
	node
	Mode   RedirMode
	Target *Compound
}

// IfStmt is a conditional block: if COND ... else ... end. The condition is a
// pipeline; its exit status selects the branch, with 0 meaning true. Else may
// be nil.
type IfStmt struct {
	node
	Cond *Pipeline
	Then *Chunk
	Else *Chunk
}

// WhileStmt is a loop: while COND ... end.
type WhileStmt struct {
	node
	Cond *Pipeline
	Body *Chunk
}

// ForStmt is an iteration loop: for NAME in VALUES ... end.
type ForStmt struct {
	node
	VarName string
	Values  []*Compound
	Body    *Chunk
}

// FnStmt is a function definition: fn NAME(PARAMS) ... end.
type FnStmt struct {
	node
	Name   string
	Params []string
	Body   *Chunk
}

// Compound is a word template: a sequence of segments that expands to a
// scalar or a list of scalars. It retains embedded variable references,
// substitutions, wildcards and braces unresolved.
type Compound struct {
	node
	Segments []Segment
}

// Segment is implemented by all word template segments: *Literal, *VarRef,
// *CmdSubst, *ArithSubst, *Wildcard and *Braced.
type Segment interface {
	Node
	seg()
}

func (*Literal) seg()    {}
func (*VarRef) seg()     {}
func (*CmdSubst) seg()   {}
func (*ArithSubst) seg() {}
func (*Wildcard) seg()   {}
func (*Braced) seg()     {}

// Literal is a fixed piece of text, from a bareword or a quoted string.
type Literal struct {
	node
	Text string
	// Quoted indicates that the text came from a quoted string and must not
	// take part in pattern building.
	Quoted bool
}

// VarRef is a variable reference $name, optionally with a slice suffix.
type VarRef struct {
	node
	Name  string
	Slice *SliceSuffix
	// Quoted indicates that the reference appeared inside double quotes,
	// which suppresses field splitting of the substituted value.
	Quoted bool
}

// SliceSuffix addresses a sub-range of a scalar's codepoints. The index
// expressions are kept as written; they are resolved against the scope at
// expansion time. An empty index means the bound was omitted.
type SliceSuffix struct {
	node
	Start string
	End   string
}

// CmdSubst is a backquoted command substitution. The body is parsed once, at
// parse time.
type CmdSubst struct {
	node
	Body *Chunk
}

// ArithSubst is an arithmetic substitution $((...)).
type ArithSubst struct {
	node
	Expr ArithExpr
}

// ArithExpr is implemented by *ArithNum, *ArithVar, *ArithUnary and
// *ArithBinary.
type ArithExpr interface {
	Node
	arith()
}

func (*ArithNum) arith()    {}
func (*ArithVar) arith()    {}
func (*ArithUnary) arith()  {}
func (*ArithBinary) arith() {}

// ArithNum is an integer literal in an arithmetic expression.
type ArithNum struct {
	node
	Value int
}

// ArithVar is a variable reference in an arithmetic expression, written
// either as $name or as a bare name.
type ArithVar struct {
	node
	Name string
}

// ArithUnary is a unary operation in an arithmetic expression.
type ArithUnary struct {
	node
	Op      rune
	Operand ArithExpr
}

// ArithBinary is a binary operation in an arithmetic expression.
type ArithBinary struct {
	node
	Op    rune
	Left  ArithExpr
	Right ArithExpr
}

// Wildcard is a glob metacharacter: '*' or '?'. A compound containing any
// wildcard expands by matching the filesystem.
type Wildcard struct {
	node
	Kind rune
}

// Braced is a brace group {a,b,...}; the compound containing it expands once
// per alternative.
type Braced struct {
	node
	Alts []*Compound
}
