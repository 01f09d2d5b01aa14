/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package query

import (
	"fmt"
	"strconv"

	"devt.de/krotik/weightgraph/graph"
)

/*
Parser is a recursive-descent parser over a fixed token slice, the way
EliasDB's EQL parser consumes its lexer's channel output one token at a
time - here simplified to an index into a pre-scanned slice since the
grammar needs no lookahead beyond one token.
*/
type Parser struct {
	tokens []LexToken
	pos    int
}

/*
Parse lexes and parses a single command line.
*/
func Parse(input string) (Command, error) {
	tokens := NewLexer(input).Tokens()
	if last := tokens[len(tokens)-1]; last.ID == TokenError {
		return nil, fmt.Errorf("%s", last.Val)
	}

	p := &Parser{tokens: tokens}
	return p.parseCommand()
}

func (p *Parser) peek() LexToken {
	return p.tokens[p.pos]
}

func (p *Parser) next() LexToken {
	t := p.tokens[p.pos]
	if t.ID != TokenEOF {
		p.pos++
	}
	return t
}

func (p *Parser) expect(id LexTokenID, what string) (LexToken, error) {
	t := p.next()
	if t.ID != id {
		return t, fmt.Errorf("expected %s, got %s", what, t)
	}
	return t, nil
}

func (p *Parser) parseCommand() (Command, error) {
	switch p.peek().ID {
	case TokenDEFINE:
		return p.parseDefineNode()
	case TokenFETCH:
		return p.parseFetch()
	case TokenADD:
		return p.parseAdd()
	case TokenUPDATE:
		return p.parseUpdate()
	case TokenDELETE:
		return p.parseDelete()
	}
	return nil, fmt.Errorf("unknown command starting with %s", p.peek())
}

func (p *Parser) parseDefineNode() (Command, error) {
	p.next() // define
	if _, err := p.expect(TokenNODE, "node"); err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	idents, err := p.parseParenList()
	if err != nil {
		return nil, err
	}

	cmd := DefineNode{Name: name, Attrs: idents}

	if p.peek().ID == TokenWITH {
		p.next()
		if _, err := p.expect(TokenAGENT, "agent"); err != nil {
			return nil, err
		}
		conditions, err := p.parseAttrs()
		if err != nil {
			return nil, err
		}
		cmd.HasAgent = true
		cmd.Conditions = conditions
	}

	return cmd, nil
}

func (p *Parser) parseFetch() (Command, error) {
	p.next() // fetch

	if p.peek().ID == TokenCONNECTION {
		p.next()
		if _, err := p.expect(TokenCHAIN, "chain"); err != nil {
			return nil, err
		}
		return FetchConnectionChain{}, nil
	}

	if _, err := p.expect(TokenNODE, "node"); err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}

	var joins []graph.Join
	for p.peek().ID == TokenJOIN {
		j, err := p.parseJoin()
		if err != nil {
			return nil, err
		}
		joins = append(joins, j)
	}

	return FetchNode{Name: name, Attrs: attrs, Joins: joins}, nil
}

func (p *Parser) parseJoin() (graph.Join, error) {
	p.next() // join

	nodeType, err := p.parseName()
	if err != nil {
		return graph.Join{}, err
	}

	if _, err := p.expect(TokenLParen, "("); err != nil {
		return graph.Join{}, err
	}

	weightTok, err := p.expect(TokenIdent, "$weight")
	if err != nil {
		return graph.Join{}, err
	}
	if weightTok.Val != "$weight" {
		return graph.Join{}, fmt.Errorf("expected $weight, got %q", weightTok.Val)
	}

	if _, err := p.expect(TokenGreater, ">"); err != nil {
		return graph.Join{}, err
	}

	strTok, err := p.expect(TokenString, "quoted number")
	if err != nil {
		return graph.Join{}, err
	}

	weight, err := parseWeight(strTok.Val)
	if err != nil {
		return graph.Join{}, err
	}

	if _, err := p.expect(TokenRParen, ")"); err != nil {
		return graph.Join{}, err
	}

	return graph.Join{NodeType: nodeType, MinWeight: weight}, nil
}

func (p *Parser) parseAdd() (Command, error) {
	p.next() // add

	if p.peek().ID == TokenCONNECTION {
		from, to, weight, err := p.parseEdgeTail()
		if err != nil {
			return nil, err
		}
		return AddEdge{From: from, To: to, Weight: weight}, nil
	}

	if _, err := p.expect(TokenNODE, "node"); err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	attrs := map[string]string{}
	if p.peek().ID == TokenLParen {
		attrs, err = p.parseAttrs()
		if err != nil {
			return nil, err
		}
	}

	return AddNode{Name: name, Attrs: attrs}, nil
}

func (p *Parser) parseUpdate() (Command, error) {
	p.next() // update

	if p.peek().ID == TokenCONNECTION {
		from, to, weight, err := p.parseEdgeTail()
		if err != nil {
			return nil, err
		}
		return UpdateEdge{From: from, To: to, Weight: weight}, nil
	}

	if _, err := p.expect(TokenNODE, "node"); err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}

	return UpdateNode{Name: name, Attrs: attrs}, nil
}

func (p *Parser) parseDelete() (Command, error) {
	p.next() // delete

	if p.peek().ID == TokenCONNECTION {
		from, to, _, err := p.parseEdgeEndpoints()
		if err != nil {
			return nil, err
		}
		return DeleteEdge{From: from, To: to}, nil
	}

	if _, err := p.expect(TokenNODE, "node"); err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}

	return DeleteNode{Name: name, Attrs: attrs}, nil
}

/*
parseEdgeTail parses "connection from NAME(attrs) to NAME(attrs) with
weight NUM", used by add/update connection.
*/
func (p *Parser) parseEdgeTail() (from, to graph.EndPoint, weight int8, err error) {
	from, to, _, err = p.parseEdgeEndpoints()
	if err != nil {
		return
	}

	if _, err = p.expect(TokenWITH, "with"); err != nil {
		return
	}
	if _, err = p.expect(TokenWEIGHT, "weight"); err != nil {
		return
	}

	numTok, nerr := p.expect(TokenNumber, "weight value")
	if nerr != nil {
		err = nerr
		return
	}

	weight, err = parseWeight(numTok.Val)
	return
}

/*
parseEdgeEndpoints parses "connection from NAME(attrs) to NAME(attrs)".
*/
func (p *Parser) parseEdgeEndpoints() (from, to graph.EndPoint, _ int8, err error) {
	p.next() // connection

	if _, err = p.expect(TokenFROM, "from"); err != nil {
		return
	}

	from.Name, err = p.parseName()
	if err != nil {
		return
	}
	from.Attrs, err = p.parseAttrs()
	if err != nil {
		return
	}

	if _, err = p.expect(TokenTO, "to"); err != nil {
		return
	}

	to.Name, err = p.parseName()
	if err != nil {
		return
	}
	to.Attrs, err = p.parseAttrs()

	return
}

func (p *Parser) parseName() (string, error) {
	t := p.next()
	if t.ID != TokenIdent {
		return "", fmt.Errorf("expected a name, got %s", t)
	}
	for _, r := range t.Val {
		if !('A' <= r && r <= 'Z' || 'a' <= r && r <= 'z') {
			return "", fmt.Errorf("invalid node type name %q", t.Val)
		}
	}
	return t.Val, nil
}

/*
parseParenList parses "(" IDENT ("," IDENT)* ")" and returns the bare
identifier list, used by define_node's attribute declaration.
*/
func (p *Parser) parseParenList() ([]string, error) {
	if _, err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}

	var idents []string
	for {
		t := p.next()
		if t.ID != TokenIdent {
			return nil, fmt.Errorf("expected an identifier, got %s", t)
		}
		idents = append(idents, t.Val)

		if p.peek().ID == TokenComma {
			p.next()
			continue
		}
		break
	}

	if _, err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}

	return idents, nil
}

/*
parseAttrs parses "(" attr ("," attr)* ")" where attr is IDENT "=" "\"VALUE\"".
*/
func (p *Parser) parseAttrs() (map[string]string, error) {
	if _, err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}

	attrs := map[string]string{}
	for {
		keyTok := p.next()
		if keyTok.ID != TokenIdent {
			return nil, fmt.Errorf("expected an attribute name, got %s", keyTok)
		}

		if _, err := p.expect(TokenEquals, "="); err != nil {
			return nil, err
		}

		valTok, err := p.expect(TokenString, "a quoted value")
		if err != nil {
			return nil, err
		}

		attrs[keyTok.Val] = valTok.Val

		if p.peek().ID == TokenComma {
			p.next()
			continue
		}
		break
	}

	if _, err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}

	return attrs, nil
}

func parseWeight(s string) (int8, error) {
	n, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q: %w", s, err)
	}
	return int8(n), nil
}
