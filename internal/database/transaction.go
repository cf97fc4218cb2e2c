package database

// Batch transactions for SurrealDB.
//
// SurrealDB has no connection-level transactions over the RPC protocol, so
// statements accumulate in a TxBuilder and are sent as one
// BEGIN TRANSACTION / COMMIT TRANSACTION block:
//
//	tb := NewTxBuilder()
//	tb.AddRaw("REMOVE TABLE IF EXISTS `users`")
//	tb.Add("INSERT INTO `users` $records", vars)  // $records -> $v1_records
//	ExecuteTransaction(ctx, db, tb)
//
// There is no isolation between Add() calls; everything runs at execute time.

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// Querier runs a SurrealQL query
type Querier interface {
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
}

// TxBuilder builds atomic transaction queries with automatic variable namespacing.
// This prevents variable name collisions when combining queries from different sources.
//
// Example: Two queries both using $records get namespaced to $v1_records and $v2_records.
type TxBuilder struct {
	statements []string
	vars       map[string]interface{}
	varCounter uint64
}

// NewTxBuilder creates a new transaction builder
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{
		statements: make([]string, 0),
		vars:       make(map[string]interface{}),
	}
}

// Add adds a statement to the transaction, namespacing variables to avoid collisions
// Returns the namespaced variable map for reference
func (tb *TxBuilder) Add(query string, vars map[string]interface{}) map[string]string {
	varMapping := make(map[string]string)
	newQuery := query

	for varName, varValue := range vars {
		counter := atomic.AddUint64(&tb.varCounter, 1)
		newVarName := fmt.Sprintf("v%d_%s", counter, varName)

		newQuery = strings.ReplaceAll(newQuery, "$"+varName, "$"+newVarName)

		tb.vars[newVarName] = varValue
		varMapping[varName] = newVarName
	}

	tb.statements = append(tb.statements, newQuery)
	return varMapping
}

// AddRaw adds a raw statement without variable substitution
func (tb *TxBuilder) AddRaw(query string) {
	tb.statements = append(tb.statements, query)
}

// Len returns the number of statements added so far
func (tb *TxBuilder) Len() int {
	return len(tb.statements)
}

// Build returns the complete transaction query and merged variables
func (tb *TxBuilder) Build() (string, map[string]interface{}) {
	if len(tb.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range tb.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), tb.vars
}

// ExecuteTransaction executes a transaction built with TxBuilder
func ExecuteTransaction(ctx context.Context, db Querier, tb *TxBuilder) ([]interface{}, error) {
	if tb.Len() == 0 {
		return nil, nil
	}

	query, vars := tb.Build()

	return db.Query(ctx, query, vars)
}
