// Package config provides configuration parsing for the listen daemon.
//
// The configuration is stored in listen.json in the working directory.
// Every field is optional; missing values take the defaults below.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "addr": ":8080",
//	    "websocketPath": "/ws",
//	    "metricsPath": "/metrics",
//	    "readTimeout": "60s",
//	    "writeTimeout": "10s",
//	    "maxMessageSize": 65536
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "listen"
//	  },
//	  "tracing": {
//	    "name": "listen",
//	    "deliverySpans": false
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := cfg.NewLogger(os.Stderr)
package config
