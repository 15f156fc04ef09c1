package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/retrofit/pkg/config"
)

func ExampleLoad_yaml() {
	dir, err := os.MkdirTemp("", "retrofit-example")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configYAML := `profile: backend
files:
  - app/api/stats/route.tsx
timeout_ms: 3000
`
	path := filepath.Join(dir, "retrofit.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o644); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	cfg, err := config.Load(context.Background(), path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	set, err := cfg.RuleSet()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Profile: %s\n", cfg.Profile)
	fmt.Printf("Files: %v\n", cfg.Files)
	fmt.Printf("Timeouts: %d/%d\n", cfg.TimeoutMillis, cfg.TransactionTimeoutMillis)
	fmt.Printf("Backup suffix: %s\n", cfg.BackupSuffix)
	fmt.Printf("Rules: %d\n", set.Len())

	// Output:
	// Profile: backend
	// Files: [app/api/stats/route.tsx]
	// Timeouts: 3000/8000
	// Backup suffix: .backup
	// Rules: 3
}

func ExampleDefaultFiles() {
	for _, f := range config.DefaultFiles("backend")[:2] {
		fmt.Println(f)
	}

	// Output:
	// app/api/clients/route.tsx
	// app/api/clients/[id]/route.tsx
}
