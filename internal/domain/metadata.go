package domain

// MergeMetadata объединяет метаданные поверхностно: ключи из patch добавляются
// или перезаписываются, отсутствующие в patch ключи сохраняются.
func MergeMetadata(current, patch map[string]any) map[string]any {
	if len(current) == 0 && len(patch) == 0 {
		return current
	}
	merged := make(map[string]any, len(current)+len(patch))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// CloneMetadata возвращает поверхностную копию метаданных.
func CloneMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
