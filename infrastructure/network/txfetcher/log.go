package txfetcher

import (
	"github.com/satoshilab/scriptcore/infrastructure/logger"
	"github.com/satoshilab/scriptcore/util/panics"
)

var log = logger.RegisterSubSystem("TXFT")
var spawn = panics.GoroutineWrapperFunc(log)
