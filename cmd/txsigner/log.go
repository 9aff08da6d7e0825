package main

import (
	"github.com/satoshilab/scriptcore/infrastructure/logger"
	"github.com/satoshilab/scriptcore/util/panics"
)

var (
	log   = logger.RegisterSubSystem("SIGN")
	spawn = panics.GoroutineWrapperFunc(log)
)
