package registry

import (
	_ "github.com/Alia5/serialpad/routines" // Register built-in routines
)
