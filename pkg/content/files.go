package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"friendsxi-web/pkg/models"
)

// Files serves entries from a directory tree laid out as
// {root}/{contentType}/{id}.md, each file carrying front matter.
type Files struct {
	Root string
}

func NewFiles(root string) *Files {
	return &Files{Root: root}
}

func (f *Files) Entries(ctx context.Context, q models.Query) ([]models.Entry, error) {
	if q.ContentType == "" || strings.Contains(q.ContentType, "..") {
		return nil, fmt.Errorf("invalid content type %q", q.ContentType)
	}
	dir := filepath.Join(f.Root, q.ContentType)

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var entries []models.Entry
	for _, d := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			continue
		}
		entry, err := readEntry(filepath.Join(dir, d.Name()), q.ContentType)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sortEntries(entries, q.Order)
	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}
	return entries, nil
}

func readEntry(path, contentType string) (models.Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.Entry{}, fmt.Errorf("reading %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return models.Entry{}, fmt.Errorf("stat %s: %w", path, err)
	}

	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		return models.Entry{}, fmt.Errorf("%s: %w", path, err)
	}
	if body != "" {
		if _, exists := fm["body"]; !exists {
			fm["body"] = body
		}
	}

	sys := models.Sys{
		ID:          strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		ContentType: contentType,
		CreatedAt:   info.ModTime().UTC(),
		UpdatedAt:   info.ModTime().UTC(),
	}
	if v, ok := fm["createdAt"]; ok {
		switch created := v.(type) {
		case time.Time:
			sys.CreatedAt = created
		default:
			if t, ok := models.ParseDate(fmt.Sprint(created)); ok {
				sys.CreatedAt = t
			}
		}
		delete(fm, "createdAt")
	}

	fields := make(models.Fields, len(fm))
	for k, v := range fm {
		raw, err := json.Marshal(v)
		if err != nil {
			return models.Entry{}, fmt.Errorf("%s: field %s: %w", path, k, err)
		}
		fields[k] = raw
	}
	return models.Entry{Sys: sys, Fields: fields}, nil
}

// sortEntries applies an order such as "-sys.createdAt" or "fields.name".
// Without an order, entries keep directory (file name) order.
func sortEntries(entries []models.Entry, order string) {
	if order == "" {
		return
	}
	desc := strings.HasPrefix(order, "-")
	key := strings.TrimPrefix(order, "-")

	slices.SortStableFunc(entries, func(a, b models.Entry) int {
		c := compareValues(orderValue(a, key), orderValue(b, key))
		if desc {
			return -c
		}
		return c
	})
}

func orderValue(e models.Entry, key string) string {
	switch key {
	case "sys.id":
		return e.Sys.ID
	case "sys.createdAt":
		return e.Sys.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z")
	case "sys.updatedAt":
		return e.Sys.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z")
	}
	name, ok := strings.CutPrefix(key, "fields.")
	if !ok {
		return ""
	}
	raw, ok := e.Fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func compareValues(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
