package stategen

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "stategen")
