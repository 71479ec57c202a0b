// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

// builder produces SQLite-flavoured queries with "?" placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const (
	tableHandles       = "sync_handles"
	tableTenants       = "tenants"
	tableEntities      = "cache_entities"
	tableCacheSettings = "cache_settings"
	tableSyncSettings  = "sync_settings"
)

// entityBatchSize keeps multi-row inserts well under SQLite's bound
// parameter limit.
const entityBatchSize = 200
