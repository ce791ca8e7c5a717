package http

import (
	"fmt"

	"github.com/replicate/releasegate/pkg/global"
)

func UserAgent() string {
	return fmt.Sprintf("releasegate/%s", global.Version)
}
