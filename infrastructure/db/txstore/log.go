package txstore

import "github.com/satoshilab/scriptcore/infrastructure/logger"

var log = logger.RegisterSubSystem("TXDB")
