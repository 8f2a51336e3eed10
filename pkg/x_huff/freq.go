package x_huff

// Count returns the occurrence count of every byte in data.
func Count(data []byte) FrequencyMap {
	freq := make(FrequencyMap)
	for _, b := range data {
		freq[b]++
	}
	return freq
}
