package gbp

// GraphQL query text, one constant per operation. The strings are opaque:
// variables are the only thing that changes between calls.

const queryMachines = `query {
  machines {
    name
    builds
  }
}`

const queryLatest = `query ($name: String!) {
  latest(name: $name) {
    number
  }
}`

const queryBuilds = `query ($name: String!) {
  builds(name: $name) {
    name
    number
    submitted
    completed
    keep
    published
    notes
  }
}`

const queryDiff = `query ($left: BuildInput!, $right: BuildInput!) {
  diff(left: $left, right: $right) {
    left {
      name
      number
      submitted
      completed
      keep
      published
      notes
    }
    right {
      name
      number
      submitted
      completed
      keep
      published
      notes
    }
    items {
      item
      status
    }
  }
}`

const queryLogs = `query ($name: String!, $number: Int!) {
  build(name: $name, number: $number) {
    logs
  }
}`

const queryBuild = `query ($name: String!, $number: Int!) {
  build(name: $name, number: $number) {
    name
    number
    submitted
    completed
    keep
    published
    notes
  }
}`

const queryPackages = `query ($name: String!, $number: Int!) {
  packages(name: $name, number: $number)
}`

const mutationPublish = `mutation ($name: String!, $number: Int!) {
  publish(name: $name, number: $number) {
    publishedBuild {
      number
    }
  }
}`

const mutationScheduleBuild = `mutation ($name: String!) {
  scheduleBuild(name: $name)
}`

const mutationKeepBuild = `mutation ($name: String!, $number: Int!) {
  keepBuild(name: $name, number: $number) {
    keep
  }
}`

const mutationReleaseBuild = `mutation ($name: String!, $number: Int!) {
  releaseBuild(name: $name, number: $number) {
    keep
  }
}`

const mutationTagBuild = `mutation ($name: String!, $number: Int!, $tag: String!) {
  tagBuild(name: $name, number: $number, tag: $tag)
}`

const mutationUntagBuild = `mutation ($name: String!, $tag: String!) {
  untagBuild(name: $name, tag: $tag)
}`

const mutationPull = `mutation ($name: String!, $number: Int!) {
  pull(name: $name, number: $number) {
    publishedBuild {
      number
    }
  }
}`
