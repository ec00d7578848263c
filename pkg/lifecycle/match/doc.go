// Package match implements the notification fan-out engine.
//
// # Overview
//
// When a new item is reported, the matcher scans every subscriber's
// notification preference and writes one notification per match. Two
// independent signals are evaluated per preference:
//
//   - Category: the item's category is an exact, case-sensitive member
//     of the preference's category list
//   - Keyword: any preference keyword occurs as a case-insensitive
//     substring of the item's title + " " + description
//
// Either signal firing produces a notification carrying a composed
// human-readable reason ("Category: wallets, Keyword: leather"). The
// item owner's own preference never matches their own item.
//
// The scan is O(P*K) over P preferences with K keywords each: fine at
// campus scale, and the first thing to revisit if the subscriber base
// grows past a few thousand.
//
// # Failure Contract
//
// Fan-out runs after item creation is durable and must never surface a
// failure to that path. Dispatch runs on a detached goroutine; one
// user's failed write is logged and counted without stopping the
// remaining evaluations. Delivery is at-least-effort, not exactly-once:
// a crashed fan-out is simply absent, never partially retried in-line.
package match
