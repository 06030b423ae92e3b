package replay

import "encoding/json"

// inject adds siteName, pageName and url to a captured object when absent.
// Input that is not a JSON object is returned unchanged.
func inject(data []byte, site, page, url string) []byte {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return data
	}
	set := func(key, val string) {
		if _, ok := obj[key]; ok {
			return
		}
		b, _ := json.Marshal(val)
		obj[key] = b
	}
	set("siteName", site)
	set("pageName", page)
	set("url", url)

	out, err := json.Marshal(obj)
	if err != nil {
		return data
	}
	return out
}
