package clients

// PreferenceStore is a durable string/long key-value store
type PreferenceStore interface {
	GetString(key, defaultValue string) (string, error)
	PutString(key, value string) error
	PutStrings(values map[string]string) error
	GetLong(key string, defaultValue int64) (int64, error)
	PutLong(key string, value int64) error
}
