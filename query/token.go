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

import "fmt"

/*
LexTokenID identifies the kind of a LexToken, the way EliasDB's EQL lexer
tags its tokens.
*/
type LexTokenID int

const (
	TokenError LexTokenID = iota
	TokenEOF

	TokenIdent  // bare word: NAME or IDENT per the grammar
	TokenNumber // unsigned integer literal
	TokenString // "..." quoted VALUE

	TokenLParen
	TokenRParen
	TokenComma
	TokenEquals
	TokenGreater

	tokenKeywordsStart

	TokenDEFINE
	TokenNODE
	TokenWITH
	TokenAGENT
	TokenFETCH
	TokenCONNECTION
	TokenCHAIN
	TokenJOIN
	TokenADD
	TokenUPDATE
	TokenDELETE
	TokenFROM
	TokenTO
	TokenWEIGHT
)

/*
keywordMap lists the case-sensitive keywords of the grammar. Identifiers
that are not one of these words lex as TokenIdent.
*/
var keywordMap = map[string]LexTokenID{
	"define":     TokenDEFINE,
	"node":       TokenNODE,
	"with":       TokenWITH,
	"agent":      TokenAGENT,
	"fetch":      TokenFETCH,
	"connection": TokenCONNECTION,
	"chain":      TokenCHAIN,
	"join":       TokenJOIN,
	"add":        TokenADD,
	"update":     TokenUPDATE,
	"delete":     TokenDELETE,
	"from":       TokenFROM,
	"to":         TokenTO,
	"weight":     TokenWEIGHT,
}

/*
LexToken is one token produced by the Lexer.
*/
type LexToken struct {
	ID  LexTokenID
	Pos int
	Val string
}

func (t LexToken) String() string {
	if t.ID == TokenEOF {
		return "EOF"
	}
	if t.ID == TokenError {
		return fmt.Sprintf("error: %s (pos %d)", t.Val, t.Pos)
	}
	return fmt.Sprintf("%q", t.Val)
}
