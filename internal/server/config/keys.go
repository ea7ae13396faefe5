package config

import (
	"reflect"
	"sort"
)

// Keys returns every dotted koanf key of ServerConfig, sorted.
func Keys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(ServerConfig{}), "", &keys)
	sort.Strings(keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, out *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct && f.Type.PkgPath() != "time" {
			collectKeys(f.Type, key, out)
			continue
		}
		*out = append(*out, key)
	}
}
