//go:build !ios && !android && (amd64 || arm64)

package avutil

import "unsafe"

// Flags for DictGet and DictSet.
const (
	DictMatchCase     = 1
	DictIgnoreSuffix  = 2
	DictDontOverwrite = 16
)

// DictSet adds key=value to *pm, allocating the dictionary if needed.
func DictSet(pm *Dictionary, key, value string, flags int32) error {
	if avDictSet == nil {
		return NewError(AVERROR_EINVAL, "av_dict_set")
	}
	return NewError(avDictSet(pm, key, value, flags), "av_dict_set")
}

// DictFree frees *pm and sets it to nil.
func DictFree(pm *Dictionary) {
	if pm == nil || *pm == nil || avDictFree == nil {
		return
	}
	avDictFree(pm)
	*pm = nil
}

// DictGet returns the first entry after prev whose key matches. Pass an
// empty key with DictIgnoreSuffix to iterate every entry.
func DictGet(m Dictionary, key string, prev unsafe.Pointer, flags int32) unsafe.Pointer {
	if m == nil || avDictGet == nil {
		return nil
	}
	return avDictGet(m, key, prev, flags)
}

// DictEntryKey reads AVDictionaryEntry.key.
func DictEntryKey(entry unsafe.Pointer) string {
	if entry == nil {
		return ""
	}
	return GoString(*(*unsafe.Pointer)(entry))
}

// DictEntryValue reads AVDictionaryEntry.value.
func DictEntryValue(entry unsafe.Pointer) string {
	if entry == nil {
		return ""
	}
	return GoString(*(*unsafe.Pointer)(unsafe.Add(entry, 8)))
}

// DictLookup returns the value stored under key (case-insensitive) and
// whether it exists.
func DictLookup(m Dictionary, key string) (string, bool) {
	entry := DictGet(m, key, nil, 0)
	if entry == nil {
		return "", false
	}
	return DictEntryValue(entry), true
}

// DictToMap copies every entry of m into a Go map.
func DictToMap(m Dictionary) map[string]string {
	out := make(map[string]string)
	var entry unsafe.Pointer
	for {
		entry = DictGet(m, "", entry, DictIgnoreSuffix)
		if entry == nil {
			return out
		}
		out[DictEntryKey(entry)] = DictEntryValue(entry)
	}
}
