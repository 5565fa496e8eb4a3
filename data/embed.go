package data

import (
	_ "embed"
)

//go:embed seed/index_code_systems.json
var IndexCodeSystems string
