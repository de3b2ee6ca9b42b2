package store

// Key layout:
//
//	<prefix><id>                      entity JSON
//	<prefix>idx:<index>:<value>       entity id
const indexSegment = "idx:"

func entityKey(prefix, id string) []byte {
	return []byte(prefix + id)
}

func indexKey(prefix, index, value string) []byte {
	return []byte(prefix + indexSegment + index + ":" + value)
}

func isIndexKey(prefix string, key []byte) bool {
	rest := key[len(prefix):]
	return len(rest) >= len(indexSegment) && string(rest[:len(indexSegment)]) == indexSegment
}
