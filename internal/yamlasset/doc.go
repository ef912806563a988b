// Package yamlasset loads tile assets from YAML files into the
// format-agnostic config.Model. It accepts the same tiles as the HCL
// loader, spelled as YAML documents:
//
//	rule_tiles:
//	  - name: grass
//	    id: 1
//	    rules:
//	      - sprites: [grass_edge]
//	        neighbors:
//	          - {x: 1, y: 0, is: not_this}
//
// A file may hold several documents separated by "---".
package yamlasset
