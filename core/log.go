package core

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("modaledit.core")
