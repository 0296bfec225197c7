package content

import (
	"encoding/json"
	"fmt"

	"friendsxi-web/pkg/models"
)

// linkResolver replaces {"sys":{"type":"Link",...}} references with the
// included asset or entry, the same shape the Contentful SDKs hand out.
type linkResolver struct {
	targets map[string]map[string]interface{}
}

func newLinkResolver() *linkResolver {
	return &linkResolver{targets: make(map[string]map[string]interface{})}
}

func linkKey(linkType, id string) string {
	return linkType + ":" + id
}

func (r *linkResolver) add(page *collection) error {
	for _, group := range []struct {
		linkType string
		raws     []json.RawMessage
	}{{"Asset", page.Includes.Asset}, {"Entry", page.Includes.Entry}} {
		for _, raw := range group.raws {
			var obj map[string]interface{}
			if err := json.Unmarshal(raw, &obj); err != nil {
				return fmt.Errorf("contentful: decoding included %s: %w", group.linkType, err)
			}
			if id := sysID(obj); id != "" {
				r.targets[linkKey(group.linkType, id)] = obj
			}
		}
	}
	for _, item := range page.Items {
		r.targets[linkKey("Entry", item.Sys.ID)] = map[string]interface{}{
			"sys":    map[string]interface{}{"id": item.Sys.ID, "type": "Entry"},
			"fields": item.Fields,
		}
	}
	return nil
}

func (r *linkResolver) entry(item rawItem) (models.Entry, error) {
	sys := models.Sys{
		ID:        item.Sys.ID,
		CreatedAt: item.Sys.CreatedAt,
		UpdatedAt: item.Sys.UpdatedAt,
	}
	if item.Sys.ContentType != nil {
		sys.ContentType = item.Sys.ContentType.Sys.ID
	}

	visiting := map[string]bool{linkKey("Entry", item.Sys.ID): true}
	fields := make(models.Fields, len(item.Fields))
	for name, value := range item.Fields {
		raw, err := json.Marshal(r.resolve(value, visiting))
		if err != nil {
			return models.Entry{}, fmt.Errorf("contentful: encoding field %s of %s: %w", name, item.Sys.ID, err)
		}
		fields[name] = raw
	}
	return models.Entry{Sys: sys, Fields: fields}, nil
}

// resolve walks a decoded JSON value. Links that are missing from the
// includes, or that point back into the chain being resolved, become nil.
func (r *linkResolver) resolve(value interface{}, visiting map[string]bool) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		if linkType, id, ok := asLink(v); ok {
			key := linkKey(linkType, id)
			target, found := r.targets[key]
			if !found || visiting[key] {
				return nil
			}
			visiting[key] = true
			defer delete(visiting, key)
			return r.resolve(target, visiting)
		}
		out := make(map[string]interface{}, len(v))
		for k, inner := range v {
			out[k] = r.resolve(inner, visiting)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, inner := range v {
			resolved := r.resolve(inner, visiting)
			if resolved == nil && isLink(inner) {
				continue
			}
			out = append(out, resolved)
		}
		return out
	default:
		return v
	}
}

func asLink(obj map[string]interface{}) (linkType, id string, ok bool) {
	sys, _ := obj["sys"].(map[string]interface{})
	if sys == nil || sys["type"] != "Link" {
		return "", "", false
	}
	linkType, _ = sys["linkType"].(string)
	id, _ = sys["id"].(string)
	return linkType, id, linkType != "" && id != ""
}

func isLink(value interface{}) bool {
	obj, _ := value.(map[string]interface{})
	_, _, ok := asLink(obj)
	return ok
}

func sysID(obj map[string]interface{}) string {
	sys, _ := obj["sys"].(map[string]interface{})
	id, _ := sys["id"].(string)
	return id
}
