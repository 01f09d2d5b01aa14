/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package config holds the node's runtime configuration: listen address,
peer dial targets, gossip topic, seen-cache TTL and product version. The
bootstrap account flags are command-line flags, not config keys. Shaped on EliasDB's
own config package (a loaded map plus Str/Int/Bool typed accessors)
rather than a struct with tags, so a config file can carry keys this
build doesn't know about without failing to parse.
*/
package config

import (
	"fmt"
	"strconv"
	"strings"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
)

/*
DefaultConfigFile is the conventional config file name. weightgraphd does
not read it implicitly: without --config it loads the in-memory
DefaultConfig.
*/
var DefaultConfigFile = "weightgraph.config.json"

/*
Known configuration options.
*/
const (
	ListenAddress   = "ListenAddress"
	PeerAddresses   = "PeerAddresses"
	GossipTopic     = "GossipTopic"
	SeenCacheTTL    = "SeenCacheTTL"
	ProductVersion  = "ProductVersion"
)

/*
DefaultConfig is the default configuration.
*/
var DefaultConfig = map[string]interface{}{
	ListenAddress:  ":9020",
	PeerAddresses:  "",
	GossipTopic:    "command",
	SeenCacheTTL:   "60",
	ProductVersion: "1.0",
}

/*
Config is the actual configuration in use.
*/
var Config map[string]interface{}

/*
LoadConfigFile loads a given config file. If the config file does not
exist it is created with the default options.
*/
func LoadConfigFile(configfile string) error {
	var err error

	Config, err = fileutil.LoadConfig(configfile, DefaultConfig)

	return err
}

/*
LoadDefaultConfig loads the default configuration.
*/
func LoadDefaultConfig() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int64 {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
PeerList splits PeerAddresses into its comma-separated dial targets,
dropping empty entries.
*/
func PeerList() []string {
	var out []string

	for _, addr := range strings.Split(Str(PeerAddresses), ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			out = append(out, addr)
		}
	}

	return out
}
