package admin

import "errors"

var ErrNotAdmin = errors.New("admin access required")
