package rtc

import "github.com/edulive/tutorlive_backend/internal/utils"

func defaultSuffix() (string, error) {
	return utils.GenerateCode(6)
}
