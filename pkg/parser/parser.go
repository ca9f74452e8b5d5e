// Package parser implements a hand-written recursive-descent parser for
// C-Minus, built as a New(lexer) / Parse...() (*Node, []error) pair over
// the classic C-Minus grammar (Louden, "Compiler Construction: Principles
// and Practice").
package parser

import (
	"cminus/pkg/ast"
	"cminus/pkg/errors"
	"cminus/pkg/lexer"
	"cminus/pkg/source"
	"fmt"
)

// Parser consumes tokens from a lexer.Lexer and builds an ast.Node tree
// using the fixed-arity Child/Sibling layout ast.Node defines.
type Parser struct {
	l   *lexer.Lexer
	src *source.SourceFile

	curTok  lexer.Token
	peekTok lexer.Token

	errs []errors.CminusError
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer, src *source.SourceFile) *Parser {
	p := &Parser{l: l, src: src}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) errorf(line int, format string, args ...interface{}) {
	p.errs = append(p.errs, &errors.SyntaxError{
		Position: errors.Position{Line: line, Source: p.src},
		Msg:      fmt.Sprintf(format, args...),
	})
}

// expect consumes curTok if it matches tt, reporting a syntax error and
// leaving curTok alone (so later productions can still attempt recovery)
// otherwise.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curTok.Type == tt {
		p.nextToken()
		return true
	}
	p.errorf(p.curTok.Line, "expected %q but found %q ('%s')", tt, p.curTok.Type, p.curTok.Literal)
	return false
}

// ParseProgram parses an entire source file into a declaration-list: the
// sibling chain of top-level VarDecl/ArrDecl/FunDecl nodes the analyzer
// later walks looking for `main`.
func ParseProgram(src *source.SourceFile) (*ast.Node, []errors.CminusError) {
	p := New(lexer.New(src), src)
	var head, tail *ast.Node
	for p.curTok.Type != lexer.EOF {
		decl := p.parseDeclaration()
		if decl == nil {
			// Parse failure on this declaration; skip to the next
			// plausible declaration start to keep collecting errors.
			p.syncToDeclaration()
			continue
		}
		if head == nil {
			head = decl
		} else {
			tail.Sibling = decl
		}
		tail = decl.LastSibling()
	}
	return head, p.errs
}

// syncToDeclaration advances past tokens until the next INT/VOID/EOF, a
// minimal panic-mode recovery so one malformed declaration doesn't
// suppress every later error.
func (p *Parser) syncToDeclaration() {
	for p.curTok.Type != lexer.EOF && p.curTok.Type != lexer.INT && p.curTok.Type != lexer.VOID {
		p.nextToken()
	}
}

func (p *Parser) parseTypeSpecifier() (ast.ExpType, int, bool) {
	line := p.curTok.Line
	switch p.curTok.Type {
	case lexer.INT:
		p.nextToken()
		return ast.Integer, line, true
	case lexer.VOID:
		p.nextToken()
		return ast.Void, line, true
	default:
		p.errorf(line, "expected a type specifier ('int' or 'void') but found %q", p.curTok.Type)
		return ast.Integer, line, false
	}
}

func newTypeNode(t ast.ExpType, line int) *ast.Node {
	n := ast.NewNode(ast.TypeK, ast.TypeGeneral, line)
	n.Type = t
	return n
}

// parseDeclaration parses one var-declaration or fun-declaration.
func (p *Parser) parseDeclaration() *ast.Node {
	typ, typeLine, ok := p.parseTypeSpecifier()
	if !ok {
		return nil
	}
	if p.curTok.Type != lexer.IDENT {
		p.errorf(p.curTok.Line, "expected an identifier but found %q", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	nameLine := p.curTok.Line
	p.nextToken()

	switch p.curTok.Type {
	case lexer.LPAREN:
		return p.parseFunDeclaration(typ, typeLine, name, nameLine)
	case lexer.LBRACKET:
		p.nextToken()
		if p.curTok.Type != lexer.NUM {
			p.errorf(p.curTok.Line, "expected an array size but found %q", p.curTok.Type)
			return nil
		}
		size := p.parseNumLiteral()
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
		if !p.expect(lexer.SEMI) {
			return nil
		}
		decl := ast.NewNode(ast.DeclK, ast.ArrDecl, nameLine)
		decl.Name = name
		decl.Child[0] = newTypeNode(typ, typeLine)
		decl.Child[1] = size
		return decl
	default:
		if !p.expect(lexer.SEMI) {
			return nil
		}
		decl := ast.NewNode(ast.DeclK, ast.VarDecl, nameLine)
		decl.Name = name
		decl.Child[0] = newTypeNode(typ, typeLine)
		return decl
	}
}

func (p *Parser) parseNumLiteral() *ast.Node {
	line := p.curTok.Line
	val, err := lexer.ParseIntLiteral(p.curTok.Literal)
	if err != nil {
		p.errorf(line, "invalid integer literal '%s'", p.curTok.Literal)
	}
	n := ast.NewNode(ast.ExpK, ast.Const, line)
	n.Val = val
	n.Type = ast.Integer
	p.nextToken()
	return n
}

func (p *Parser) parseFunDeclaration(retType ast.ExpType, typeLine int, name string, nameLine int) *ast.Node {
	p.nextToken() // consume '('
	params := p.parseParams()
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	body := p.parseCompoundStmt()

	decl := ast.NewNode(ast.DeclK, ast.FunDecl, nameLine)
	decl.Name = name
	decl.Type = retType
	decl.Child[0] = newTypeNode(retType, typeLine)
	decl.Child[1] = params
	decl.Child[2] = body
	return decl
}

func (p *Parser) parseParams() *ast.Node {
	if p.curTok.Type == lexer.VOID && p.peekTok.Type == lexer.RPAREN {
		line := p.curTok.Line
		p.nextToken()
		return ast.NewNode(ast.ParamK, ast.VoidParam, line)
	}
	if p.curTok.Type == lexer.RPAREN {
		// Empty parameter list; treat as void, matching the grammar's
		// `params -> void` production when no parameters are written.
		return ast.NewNode(ast.ParamK, ast.VoidParam, p.curTok.Line)
	}

	var head, tail *ast.Node
	for {
		param := p.parseParam()
		if param == nil {
			break
		}
		if head == nil {
			head = param
		} else {
			tail.Sibling = param
		}
		tail = param
		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	return head
}

func (p *Parser) parseParam() *ast.Node {
	typ, typeLine, ok := p.parseTypeSpecifier()
	if !ok {
		return nil
	}
	if p.curTok.Type != lexer.IDENT {
		p.errorf(p.curTok.Line, "expected a parameter name but found %q", p.curTok.Type)
		return nil
	}
	name := p.curTok.Literal
	line := p.curTok.Line
	p.nextToken()

	if p.curTok.Type == lexer.LBRACKET {
		p.nextToken()
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
		param := ast.NewNode(ast.ParamK, ast.ArrParam, line)
		param.Name = name
		param.Child[0] = newTypeNode(typ, typeLine)
		return param
	}
	param := ast.NewNode(ast.ParamK, ast.VarParam, line)
	param.Name = name
	param.Child[0] = newTypeNode(typ, typeLine)
	return param
}

func (p *Parser) parseCompoundStmt() *ast.Node {
	line := p.curTok.Line
	if !p.expect(lexer.LBRACE) {
		return ast.NewNode(ast.StmtK, ast.Compound, line)
	}
	decls := p.parseLocalDeclarations()
	stmts := p.parseStatementList()
	p.expect(lexer.RBRACE)

	n := ast.NewNode(ast.StmtK, ast.Compound, line)
	n.Child[0] = decls
	n.Child[1] = stmts
	return n
}

func (p *Parser) parseLocalDeclarations() *ast.Node {
	var head, tail *ast.Node
	for p.curTok.Type == lexer.INT || p.curTok.Type == lexer.VOID {
		decl := p.parseDeclaration()
		if decl == nil {
			p.syncToDeclaration()
			if p.curTok.Type != lexer.INT && p.curTok.Type != lexer.VOID {
				break
			}
			continue
		}
		if head == nil {
			head = decl
		} else {
			tail.Sibling = decl
		}
		tail = decl
	}
	return head
}

func (p *Parser) parseStatementList() *ast.Node {
	var head, tail *ast.Node
	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt == nil {
			continue
		}
		if head == nil {
			head = stmt
		} else {
			tail.Sibling = stmt
		}
		tail = stmt
	}
	return head
}

func (p *Parser) parseStatement() *ast.Node {
	switch p.curTok.Type {
	case lexer.LBRACE:
		return p.parseCompoundStmt()
	case lexer.IF:
		return p.parseSelectionStmt()
	case lexer.WHILE:
		return p.parseIterationStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.SEMI:
		p.nextToken() // empty statement
		return nil
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseSelectionStmt() *ast.Node {
	line := p.curTok.Line
	p.nextToken() // 'if'
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	p.expect(lexer.RPAREN)
	thenStmt := p.parseStatement()

	n := ast.NewNode(ast.StmtK, ast.Selection, line)
	n.Child[0] = cond
	n.Child[1] = thenStmt
	if p.curTok.Type == lexer.ELSE {
		p.nextToken()
		n.Child[2] = p.parseStatement()
	}
	return n
}

func (p *Parser) parseIterationStmt() *ast.Node {
	line := p.curTok.Line
	p.nextToken() // 'while'
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	p.expect(lexer.RPAREN)
	body := p.parseStatement()

	n := ast.NewNode(ast.StmtK, ast.Iteration, line)
	n.Child[0] = cond
	n.Child[1] = body
	return n
}

func (p *Parser) parseReturnStmt() *ast.Node {
	line := p.curTok.Line
	p.nextToken() // 'return'
	n := ast.NewNode(ast.StmtK, ast.Return, line)
	if p.curTok.Type != lexer.SEMI {
		n.Child[0] = p.parseExpression()
	}
	p.expect(lexer.SEMI)
	return n
}

func (p *Parser) parseExpressionStmt() *ast.Node {
	if p.curTok.Type == lexer.EOF {
		p.errorf(p.curTok.Line, "unexpected end of file, expected a statement")
		return nil
	}
	expr := p.parseExpression()
	p.expect(lexer.SEMI)
	return expr
}

// parseExpression parses `var = expression | simple-expression`. Since a
// recursive-descent parser can't tell the two productions apart until it
// has already parsed the left side, it parses a simple-expression first
// and, if an '=' follows, requires that expression to have been a bare
// Var/Arr (an assignable place).
func (p *Parser) parseExpression() *ast.Node {
	left := p.parseSimpleExpression()
	if p.curTok.Type == lexer.ASSIGN {
		line := p.curTok.Line
		if left == nil || (left.Sub != ast.Var && left.Sub != ast.Arr) {
			p.errorf(line, "left-hand side of assignment must be a variable or array element")
			p.nextToken()
			return p.parseExpression()
		}
		p.nextToken()
		rhs := p.parseExpression()
		n := ast.NewNode(ast.ExpK, ast.Assign, line)
		n.Child[0] = left
		n.Child[1] = rhs
		return n
	}
	return left
}

var relops = map[lexer.TokenType]bool{
	lexer.LT: true, lexer.LTE: true, lexer.GT: true,
	lexer.GTE: true, lexer.EQ: true, lexer.NEQ: true,
}

func (p *Parser) parseSimpleExpression() *ast.Node {
	left := p.parseAdditiveExpression()
	if relops[p.curTok.Type] {
		op := string(p.curTok.Type)
		line := p.curTok.Line
		p.nextToken()
		right := p.parseAdditiveExpression()
		n := ast.NewNode(ast.ExpK, ast.Op, line)
		n.Op = op
		n.Child[0] = left
		n.Child[1] = right
		return n
	}
	return left
}

func (p *Parser) parseAdditiveExpression() *ast.Node {
	left := p.parseTerm()
	for p.curTok.Type == lexer.PLUS || p.curTok.Type == lexer.MINUS {
		op := string(p.curTok.Type)
		line := p.curTok.Line
		p.nextToken()
		right := p.parseTerm()
		n := ast.NewNode(ast.ExpK, ast.Op, line)
		n.Op = op
		n.Child[0] = left
		n.Child[1] = right
		left = n
	}
	return left
}

func (p *Parser) parseTerm() *ast.Node {
	left := p.parseFactor()
	for p.curTok.Type == lexer.TIMES || p.curTok.Type == lexer.OVER {
		op := string(p.curTok.Type)
		line := p.curTok.Line
		p.nextToken()
		right := p.parseFactor()
		n := ast.NewNode(ast.ExpK, ast.Op, line)
		n.Op = op
		n.Child[0] = left
		n.Child[1] = right
		left = n
	}
	return left
}

func (p *Parser) parseFactor() *ast.Node {
	switch p.curTok.Type {
	case lexer.LPAREN:
		p.nextToken()
		e := p.parseExpression()
		p.expect(lexer.RPAREN)
		return e
	case lexer.NUM:
		return p.parseNumLiteral()
	case lexer.IDENT:
		name := p.curTok.Literal
		line := p.curTok.Line
		p.nextToken()
		switch p.curTok.Type {
		case lexer.LPAREN:
			p.nextToken()
			args := p.parseArgs()
			p.expect(lexer.RPAREN)
			n := ast.NewNode(ast.ExpK, ast.Call, line)
			n.Name = name
			n.Child[0] = args
			return n
		case lexer.LBRACKET:
			p.nextToken()
			idx := p.parseExpression()
			p.expect(lexer.RBRACKET)
			n := ast.NewNode(ast.ExpK, ast.Arr, line)
			n.Name = name
			n.Child[0] = idx
			return n
		default:
			n := ast.NewNode(ast.ExpK, ast.Var, line)
			n.Name = name
			return n
		}
	default:
		p.errorf(p.curTok.Line, "unexpected token %q in expression", p.curTok.Type)
		n := ast.NewNode(ast.ExpK, ast.Const, p.curTok.Line)
		n.Type = ast.Integer
		p.nextToken()
		return n
	}
}

func (p *Parser) parseArgs() *ast.Node {
	if p.curTok.Type == lexer.RPAREN {
		return nil
	}
	var head, tail *ast.Node
	for {
		arg := p.parseExpression()
		if head == nil {
			head = arg
		} else {
			tail.Sibling = arg
		}
		tail = arg
		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	return head
}
