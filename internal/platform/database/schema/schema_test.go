// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gosanz/mangashelfapi/internal/platform/database/schema"
)

/*
TestList verifies plain and alias-qualified column lists.
*/
func TestList(t *testing.T) {
	columns := schema.Publisher.Columns()

	assert.Equal(t, "id, name, country, is_active", schema.List("", columns))
	assert.Equal(t, "p.id, p.name, p.country, p.is_active", schema.List("p", columns))
}
