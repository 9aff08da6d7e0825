package ldb

import "github.com/satoshilab/scriptcore/infrastructure/logger"

var log = logger.RegisterSubSystem("TXDB")
