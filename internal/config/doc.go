// Package config provides configuration parsing for vmark projects.
//
// The configuration is stored in vmark.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "docs",
//	  "server": {
//	    "port": 3000,
//	    "host": "localhost",
//	    "liveReload": true,
//	    "metrics": false
//	  },
//	  "watch": {
//	    "ignore": ["**/node_modules/**", "**/.git/**"],
//	    "debounce": "100ms"
//	  },
//	  "render": {
//	    "wrapper": "article",
//	    "class": "markdown-body",
//	    "unsafe": false,
//	    "highlight": true,
//	    "theme": "github"
//	  },
//	  "publish": {
//	    "include": ["**/*.md", "assets/**"],
//	    "exclude": ["**/draft-*.md"],
//	    "out": "dist",
//	    "s3Bucket": "docs-site"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Port:", cfg.Server.Port)
package config
