package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned when a role name is not part of the enumeration
var ErrUnknownRole = errors.New("unknown role")

// Cluster is a coarse vehicle-segment label used as a secondary lookup key
type Cluster uint8

const (
	ClusterGeneral Cluster = iota // No segment signal in the message
	Cluster0                      // Legacy BEVs (Model 3, 2018-era), good range
	Cluster1                      // PHEVs (Pacifica), short electric range
	Cluster2                      // Modern BEVs (Model Y)
)

var clusterNames = [...]string{
	ClusterGeneral: "general",
	Cluster0:       "Cluster 0",
	Cluster1:       "Cluster 1",
	Cluster2:       "Cluster 2",
}

// Clusters returns every cluster label, fallback first
func Clusters() []Cluster {
	return []Cluster{ClusterGeneral, Cluster0, Cluster1, Cluster2}
}

func (c Cluster) String() string {
	if int(c) >= len(clusterNames) {
		return fmt.Sprintf("cluster(%d)", uint8(c))
	}
	return clusterNames[c]
}

// MarshalText encodes the cluster by name
func (c Cluster) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCluster accepts "Cluster 1", "cluster1", "1" and "general"
func ParseCluster(s string) (Cluster, error) {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	switch name {
	case "general", "":
		return ClusterGeneral, nil
	case "cluster0", "0":
		return Cluster0, nil
	case "cluster1", "1":
		return Cluster1, nil
	case "cluster2", "2":
		return Cluster2, nil
	}
	return ClusterGeneral, fmt.Errorf("unknown cluster: %q", s)
}

// Role is the persona selected by the user at session start
type Role uint8

const (
	RoleNone         Role = iota // Unconditioned: answers follow the intent
	RoleConsumer                 // Private buyer
	RolePolicymaker              // Government / regulator
	RoleFleetManager             // Company fleet operator
	RoleDealer                   // Dealership / reseller
)

var roleNames = [...]string{
	RoleNone:         "none",
	RoleConsumer:     "consumer",
	RolePolicymaker:  "policymaker",
	RoleFleetManager: "fleet_manager",
	RoleDealer:       "dealer",
}

// Roles returns the roles that condition responses (RoleNone excluded)
func Roles() []Role {
	return []Role{RoleConsumer, RolePolicymaker, RoleFleetManager, RoleDealer}
}

func (r Role) String() string {
	if int(r) >= len(roleNames) {
		return fmt.Sprintf("role(%d)", uint8(r))
	}
	return roleNames[r]
}

// MarshalText encodes the role by name
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRole parses a role name; the empty string means RoleNone
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, " ", "_")
	switch name {
	case "", "none":
		return RoleNone, nil
	case "fleet", "fleetmanager":
		return RoleFleetManager, nil
	case "government", "policy_maker":
		return RolePolicymaker, nil
	}
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}
