package obs

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

var (
	initOnce sync.Once
	jsonOut  *log.Logger
)

// Logger returns the process-wide logger. Output is one JSON object per line
// on stdout so the log collector needs no parse configuration.
func Logger() *log.Logger {
	initOnce.Do(func() {
		jsonOut = log.New(os.Stdout, "", 0)
	})
	return jsonOut
}

// LogRequest serializes the entry as a single JSON line. An entry that cannot
// be marshaled is replaced with a fixed marker instead of being dropped.
func LogRequest(entry map[string]any) {
	data, err := json.Marshal(entry)
	if err != nil {
		Logger().Println(`{"level":"error","msg":"unserializable log entry","service":"transporter-api"}`)
		return
	}
	Logger().Println(string(data))
}
