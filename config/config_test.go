package config

import (
	"testing"

	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate every registered default", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
			So(viper.GetInt(key.PlayerPollIntervalMs), ShouldEqual, 500)
			So(viper.GetString(key.PlayerBinary), ShouldEqual, "mpv")
		})

		Convey("Should register every declared key", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("player.poll_interval_ms"), ShouldEqual, "player_poll_interval_ms")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the poll interval field", t, func() {
		field := Default[key.PlayerPollIntervalMs]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "REEL_PLAYER_POLL_INTERVAL_MS")
		})

		Convey("Parse should accept integers", func() {
			v, err := field.Parse([]string{"250"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 250)
		})

		Convey("Parse should reject garbage", func() {
			_, err := field.Parse([]string{"soon"})
			So(err, ShouldNotBeNil)
		})

		Convey("Parse should reject multiple values", func() {
			_, err := field.Parse([]string{"1", "2"})
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a list field", t, func() {
		field := Default[key.PlayerExtraArgs]

		Convey("Parse should keep every value in order", func() {
			v, err := field.Parse([]string{"--mute=yes", "--loop-playlist"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"--mute=yes", "--loop-playlist"})
			So(field.TypeName(), ShouldEqual, "[]string")
		})
	})
}
