// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage implements vote and key-ring persistence over database/sql.

Store works against postgres (lib/pq) and sqlite (modernc.org/sqlite). The
allow-list is stored as a JSON array column; comparisons against it happen
in code, not in SQL, so stored casing is preserved.

Uniqueness failures surface as ErrDuplicate regardless of driver, and
missing rows as ErrNotFound. Every method takes a context so callers can
bound each database call.
*/
package storage
