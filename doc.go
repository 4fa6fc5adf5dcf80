// Package positions keeps a personal ledger of trading positions.
//
// A Position is opened by a first order (Long or Short) and evolves with the
// orders recorded against it: orders with the same action add to it, orders
// with the opposite action close part of it and realise an income against the
// average price at that moment. Every derived figure (net amount, average
// price, average value, income) is recomputed from the orders, so removing an
// order is as simple as replaying the others.
//
// A Book is the whole set of positions together with its display preferences.
// It is persisted by a Store as a single JSON document, rewritten on every
// change. Older layouts of that document are migrated when read.
//
// This package is the foundation of the `pos` command-line tool and its
// interactive session.
package positions
