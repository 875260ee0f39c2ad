// Package updater checks a release feed for newer versions and turns the
// check's lifecycle into status messages for the window content.
//
// A Checker runs one check cycle and reports Events through a callback. The
// Notifier renders each Event with Event.Message, logs it and publishes it on
// the "message" channel of a MessageSink. Errors end the cycle; nothing is
// retried.
//
// FeedChecker is the Checker used by the application. It reads an
// electron-builder style latest.yml:
//
//	version: 1.4.0
//	path: snippet-shell-1.4.0.tar.gz
//	releaseDate: '2026-09-30T12:00:00.000Z'
//	files:
//	  - url: snippet-shell-1.4.0.tar.gz
//	    size: 10485760
//
// and, when the advertised version is newer than the running one, downloads
// the first file into a local cache directory. Verifying and installing the
// package are left to the platform installer.
package updater
