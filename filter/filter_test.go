package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Title    string
	Vendor   string
	Category string
	Status   string
}

func searchableOf(r record) []string { return []string{r.Title, r.Vendor} }

var fields = Fields[record]{
	"category": func(r record) string { return r.Category },
	"status":   func(r record) string { return r.Status },
}

func sample() []record {
	return []record{
		{"Office chairs", "IKEA", "office", "approved"},
		{"Figma license", "Figma Inc", "software", "pending"},
		{"Flight to Berlin", "Lufthansa", "travel", "approved"},
		{"OFFICE supplies", "Staples", "office", "pending"},
	}
}

func TestMatchesSearch(t *testing.T) {
	records := sample()

	// 不区分大小写的子串匹配
	assert.True(t, Matches(records[0], "office", searchableOf, nil, fields))
	assert.True(t, Matches(records[3], "office", searchableOf, nil, fields))
	assert.True(t, Matches(records[1], "FIGMA", searchableOf, nil, fields))

	// 供应商字段也参与搜索
	assert.True(t, Matches(records[2], "lufthansa", searchableOf, nil, fields))

	// 不匹配
	assert.False(t, Matches(records[0], "berlin", searchableOf, nil, fields))
}

func TestMatchesEmptySearch(t *testing.T) {
	// 空搜索词匹配一切
	for _, r := range sample() {
		assert.True(t, Matches(r, "", searchableOf, nil, fields))
	}
}

func TestMatchesFilters(t *testing.T) {
	rec := record{"Office chairs", "IKEA", "office", "approved"}

	assert.True(t, Matches(rec, "", searchableOf, map[string]string{"category": "office"}, fields))
	assert.False(t, Matches(rec, "", searchableOf, map[string]string{"category": "travel"}, fields))

	// all 和空字符串视为不过滤
	assert.True(t, Matches(rec, "", searchableOf, map[string]string{"category": All}, fields))
	assert.True(t, Matches(rec, "", searchableOf, map[string]string{"category": ""}, fields))

	// 未注册的字段跳过
	assert.True(t, Matches(rec, "", searchableOf, map[string]string{"unknown": "x"}, fields))

	// 多条件为 AND 关系
	assert.True(t, Matches(rec, "", searchableOf,
		map[string]string{"category": "office", "status": "approved"}, fields))
	assert.False(t, Matches(rec, "", searchableOf,
		map[string]string{"category": "office", "status": "pending"}, fields))
}

func TestMatchesSearchAndFilterCombined(t *testing.T) {
	records := sample()
	view := Apply(records, "office", searchableOf, map[string]string{"status": "pending"}, fields)
	require.Len(t, view, 1)
	assert.Equal(t, "OFFICE supplies", view[0].Title)
}

func TestApplyPreservesOrderAndInput(t *testing.T) {
	records := sample()
	view := Apply(records, "", searchableOf, map[string]string{"category": "office"}, fields)

	require.Len(t, view, 2)
	assert.Equal(t, "Office chairs", view[0].Title)
	assert.Equal(t, "OFFICE supplies", view[1].Title)

	// 输入不被修改
	assert.Equal(t, sample(), records)
}

func TestApplyIdempotent(t *testing.T) {
	records := sample()
	filters := map[string]string{"status": "approved"}

	once := Apply(records, "", searchableOf, filters, fields)
	twice := Apply(once, "", searchableOf, filters, fields)
	assert.Equal(t, once, twice)
}

func TestApplyEmpty(t *testing.T) {
	view := Apply[record](nil, "anything", searchableOf, nil, fields)
	assert.Empty(t, view)
}
