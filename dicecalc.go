/*
 * DiceCalc
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package dicecalc evaluates dice expressions like "5 + 2d6".

An expression is lexed, parsed into an AST and then evaluated. The result is
a value.Value which carries the result together with the individual dice:

	res, err := dicecalc.Run("example", "5 + 2d6")
	fmt.Println(res) // e.g. 10 <= (5 (2 + 3) + 5)

Parsed expressions are cached. The cache size, the cache expiry and the dice
limits are controlled through the config package.
*/
package dicecalc

import (
	"sync"

	"github.com/krotik/common/datautil"
	"github.com/krotik/dicecalc/config"
	"github.com/krotik/dicecalc/interpreter"
	"github.com/krotik/dicecalc/parser"
	"github.com/krotik/dicecalc/value"
	"github.com/krotik/ecal/util"
)

/*
Logger is the logger which is given to all interpreters created by Run
and RunWithSource.
*/
var Logger util.Logger = util.NewNullLogger()

/*
EnableLogging sets a logger which only logs messages of the configured
log level or above.
*/
func EnableLogging(logger util.Logger) error {
	ll, err := util.NewLogLevelLogger(logger, config.Str(config.LogLevel))

	if err == nil {
		Logger = ll
	}

	return err
}

/*
ParseCache is a cache for parsed expressions
*/
var ParseCache *datautil.MapCache

/*
parseCacheLock protects the initialisation of the parse cache
*/
var parseCacheLock = &sync.Mutex{}

/*
ResetCache removes all cached expressions. The cache is recreated with the
current configuration on the next parse.
*/
func ResetCache() {
	parseCacheLock.Lock()
	defer parseCacheLock.Unlock()

	ParseCache = nil
}

/*
parseCache returns the parse cache and creates it if necessary.
*/
func parseCache() *datautil.MapCache {
	parseCacheLock.Lock()
	defer parseCacheLock.Unlock()

	if ParseCache == nil {
		ParseCache = datautil.NewMapCache(uint64(config.Int(config.ParseCacheMaxSize)),
			config.Int(config.ParseCacheMaxAgeSeconds))
	}

	return ParseCache
}

/*
ParseExpression parses a given expression. Returns a cached AST if the same
expression was parsed before. Cached ASTs must not be modified.
*/
func ParseExpression(name string, expr string) (*parser.ASTNode, error) {
	cache := parseCache()

	if ast, ok := cache.Get(expr); ok {
		return ast.(*parser.ASTNode), nil
	}

	ast, err := parser.Parse(name, expr)

	if err == nil {
		cache.Put(expr, ast)
	}

	return ast, err
}

/*
Run evaluates a given expression with a randomly seeded source.
*/
func Run(name string, expr string) (*value.Value, error) {
	src, err := interpreter.NewRandomSource()
	if err != nil {
		return nil, err
	}

	return RunWithSource(name, expr, src)
}

/*
RunWithSource evaluates a given expression and rolls all dice with a given
source.
*/
func RunWithSource(name string, expr string, src interpreter.Source) (*value.Value, error) {
	ast, err := ParseExpression(name, expr)
	if err != nil {
		return nil, err
	}

	i := interpreter.NewInterpreter(name, src)
	i.Logger = Logger

	return i.Evaluate(ast)
}
