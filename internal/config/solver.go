package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Solver struct {
	MaxNodes int
	Timeout  time.Duration
}

func NewSolver() (*Solver, error) {
	cfg := &Solver{
		Timeout: 10 * time.Second,
	}

	if maxNodesStr, ok := os.LookupEnv("SOLVER_MAX_NODES"); ok {
		maxNodes, err := strconv.Atoi(maxNodesStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SOLVER_MAX_NODES: %w", err)
		}
		cfg.MaxNodes = maxNodes
	}

	if timeoutStr, ok := os.LookupEnv("SOLVER_TIMEOUT_MS"); ok {
		timeoutMs, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SOLVER_TIMEOUT_MS: %w", err)
		}
		cfg.Timeout = time.Duration(timeoutMs) * time.Millisecond
	}

	return cfg, nil
}
